package services

import (
	"context"
	"errors"
	"sync"

	"github.com/GregMSThompson/solicitation-agent/internal/dto"
)

type fakeIndex struct {
	mu      sync.Mutex
	queries []dto.IndexQuery
	search  func(q dto.IndexQuery) (dto.IndexResult, error)
}

func (f *fakeIndex) Search(ctx context.Context, q dto.IndexQuery) (dto.IndexResult, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()
	if f.search == nil {
		return dto.IndexResult{}, nil
	}
	return f.search(q)
}

func (f *fakeIndex) recorded() []dto.IndexQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]dto.IndexQuery(nil), f.queries...)
}

type fakeVertex struct {
	mu        sync.Mutex
	starts    int
	configs   []dto.VertexChatConfig
	responses []dto.VertexGenerateResponse
	chats     []*fakeChat
	startErr  error
	sendErr   error
}

func (f *fakeVertex) StartChat(ctx context.Context, cfg dto.VertexChatConfig) (dto.VertexChat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.startErr != nil {
		return nil, f.startErr
	}
	f.starts++
	f.configs = append(f.configs, cfg)
	chat := &fakeChat{parent: f}
	f.chats = append(f.chats, chat)
	return chat, nil
}

func (f *fakeVertex) startCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.starts
}

type fakeChat struct {
	parent   *fakeVertex
	messages []dto.VertexChatMessage
}

func (c *fakeChat) SendMessage(ctx context.Context, msg dto.VertexChatMessage) (dto.VertexGenerateResponse, error) {
	f := c.parent
	f.mu.Lock()
	defer f.mu.Unlock()
	c.messages = append(c.messages, msg)
	if f.sendErr != nil {
		return dto.VertexGenerateResponse{}, f.sendErr
	}
	if len(f.responses) == 0 {
		return dto.VertexGenerateResponse{}, errors.New("no responses configured")
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, nil
}
