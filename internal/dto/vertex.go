package dto

import "context"

// VertexChatConfig describes a conversation to start: model, system
// instructions and the tools the model may call for the whole conversation.
type VertexChatConfig struct {
	Model           string
	System          string
	Tools           []VertexTool
	Temperature     *float32
	MaxOutputTokens *int32
}

// VertexChat is a live multi-turn conversation handle. History is kept by the
// handle itself; callers only send the next turn.
type VertexChat interface {
	SendMessage(ctx context.Context, msg VertexChatMessage) (VertexGenerateResponse, error)
}

// VertexChatMessage is one user turn: either text or a batch of tool results.
type VertexChatMessage struct {
	Text        string
	ToolResults []VertexToolResult
}

type VertexGenerateResponse struct {
	Text      string
	ToolCalls []VertexToolCall
	Raw       any
}

type VertexTool struct {
	Name        string
	Description string
	Parameters  *VertexSchema
}

type VertexToolCall struct {
	Name string
	Args map[string]any
}

type VertexToolResult struct {
	Name     string
	Response map[string]any
}

type VertexSchema struct {
	Type        string
	Description string
	Enum        []string
	Properties  map[string]*VertexSchema
	Required    []string
	Items       *VertexSchema
}
