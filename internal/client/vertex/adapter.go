package vertexclient

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/vertexai/genai"
	"google.golang.org/api/option"

	"github.com/GregMSThompson/solicitation-agent/internal/dto"
)

type Adapter struct {
	client *genai.Client
	model  string
	log    *slog.Logger
}

// NewAdapter connects to Vertex AI. When apiKey is empty the client falls
// back to application default credentials.
func NewAdapter(ctx context.Context, log *slog.Logger, projectID, region, model, apiKey string) (*Adapter, error) {
	var opts []option.ClientOption
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	client, err := genai.NewClient(ctx, projectID, region, opts...)
	if err != nil {
		return nil, err
	}

	return &Adapter{
		client: client,
		model:  model,
		log:    log,
	}, nil
}

func (a *Adapter) Close() error {
	err := a.client.Close()
	if err != nil && a.log != nil {
		a.log.Error("vertex adapter close failed", "error", err)
	}
	return err
}

// StartChat configures a model for the conversation and returns a handle that
// keeps the history across SendMessage calls.
func (a *Adapter) StartChat(ctx context.Context, cfg dto.VertexChatConfig) (dto.VertexChat, error) {
	modelName := cfg.Model
	if modelName == "" {
		modelName = a.model
	}
	if modelName == "" {
		return nil, fmt.Errorf("vertex model is required")
	}

	model := a.client.GenerativeModel(modelName)
	if cfg.System != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(cfg.System)},
		}
	}
	if cfg.Temperature != nil {
		model.SetTemperature(*cfg.Temperature)
	}
	if cfg.MaxOutputTokens != nil {
		model.SetMaxOutputTokens(*cfg.MaxOutputTokens)
	}
	if len(cfg.Tools) > 0 {
		model.Tools = toGenaiTools(cfg.Tools)
	}

	return &chat{session: model.StartChat()}, nil
}

type chat struct {
	session *genai.ChatSession
}

func (c *chat) SendMessage(ctx context.Context, msg dto.VertexChatMessage) (dto.VertexGenerateResponse, error) {
	out := dto.VertexGenerateResponse{}

	parts := toGenaiParts(msg)
	if len(parts) == 0 {
		return out, fmt.Errorf("vertex chat message has no content")
	}

	resp, err := c.session.SendMessage(ctx, parts...)
	if err != nil {
		return out, err
	}

	out.Raw = resp
	out.Text, out.ToolCalls = parseContentResponse(resp)
	return out, nil
}

func toGenaiParts(msg dto.VertexChatMessage) []genai.Part {
	var parts []genai.Part
	if msg.Text != "" {
		parts = append(parts, genai.Text(msg.Text))
	}
	for _, toolResult := range msg.ToolResults {
		parts = append(parts, genai.FunctionResponse{
			Name:     toolResult.Name,
			Response: toolResult.Response,
		})
	}
	return parts
}

func parseContentResponse(resp *genai.GenerateContentResponse) (string, []dto.VertexToolCall) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", nil
	}

	var text string
	var calls []dto.VertexToolCall
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			switch p := part.(type) {
			case genai.Text:
				text += string(p)
			case genai.FunctionCall:
				calls = append(calls, dto.VertexToolCall{Name: p.Name, Args: p.Args})
			case *genai.FunctionCall:
				calls = append(calls, dto.VertexToolCall{Name: p.Name, Args: p.Args})
			}
		}
	}

	return text, calls
}
