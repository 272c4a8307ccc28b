package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/GregMSThompson/solicitation-agent/internal/dto"
	"github.com/GregMSThompson/solicitation-agent/internal/errs"
	"github.com/GregMSThompson/solicitation-agent/pkg/helpers"
	"github.com/GregMSThompson/solicitation-agent/pkg/logger"
)

const (
	DefaultThreadID = "default"

	chatTemperature     float32 = 0.7
	chatMaxOutputTokens int32   = 2048
)

// ChatSession is the cached conversation for one thread id.
type ChatSession struct {
	ThreadID  string
	CreatedAt time.Time
	Tools     []dto.VertexTool

	chat dto.VertexChat
	// turn serializes messages on the same thread; the chat handle keeps history.
	turn sync.Mutex
}

// GetOrCreateSession returns the session for threadID, creating it on first
// use. Concurrent first calls for the same thread create a single session.
func (s *chatService) GetOrCreateSession(ctx context.Context, threadID string) (*ChatSession, error) {
	threadID = normalizeThreadID(threadID)
	if sess, ok := s.lookupSession(threadID); ok {
		return sess, nil
	}

	v, err, _ := s.creating.Do(threadID, func() (any, error) {
		if sess, ok := s.lookupSession(threadID); ok {
			return sess, nil
		}
		sess, err := s.newSession(ctx, threadID)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.sessions[threadID] = sess
		n := len(s.sessions)
		s.mu.Unlock()

		s.metrics.SetSessions(n)
		return sess, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*ChatSession), nil
}

// Close drops every cached session. The service stays usable; new sessions
// are created on demand.
func (s *chatService) Close() {
	s.mu.Lock()
	clear(s.sessions)
	s.mu.Unlock()
	s.metrics.SetSessions(0)
}

func (s *chatService) lookupSession(threadID string) (*ChatSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[threadID]
	return sess, ok
}

func (s *chatService) newSession(ctx context.Context, threadID string) (*ChatSession, error) {
	log := logger.FromContext(ctx)

	schema := s.schema.Discover(ctx)
	tools := buildToolCatalog(schema)
	now := s.clockNow()

	chat, err := s.vertex.StartChat(ctx, dto.VertexChatConfig{
		Model:           s.model,
		System:          systemInstructions(now),
		Tools:           tools,
		Temperature:     helpers.Ptr(chatTemperature),
		MaxOutputTokens: helpers.Ptr(chatMaxOutputTokens),
	})
	if err != nil {
		return nil, errs.NewExternalServiceError("vertex", "error starting chat session", err)
	}

	log.Info("created chat session", "thread_id", threadID, "date_fields", schema.DateFields)
	return &ChatSession{
		ThreadID:  threadID,
		CreatedAt: now,
		Tools:     tools,
		chat:      chat,
	}, nil
}

func normalizeThreadID(threadID string) string {
	if threadID == "" {
		return DefaultThreadID
	}
	return threadID
}

func systemInstructions(now time.Time) string {
	return fmt.Sprintf(`You are an expert at finding and searching RFP documents.
You have full access to our company's internal database of scraped and discovered RFPs.
Answer the user's question from the search results. If the results do not contain relevant information, say so politely.

TODAY'S DATE: %s (Unix timestamp: %d milliseconds)

Always use the search_rfp_database tool before answering questions about RFPs, and get_rfp_statistics for counts, trends and percentages.

When answering:
1. Extract the relevant keywords from the question.
   - For company or product names (like "Infor", "Microsoft", "Oracle") search for the exact name: "Infor RFP" means query="Infor", not "information".
2. For relative dates ("yesterday", "last week", "this month") prefer the date_range parameter; otherwise convert dates to Unix timestamps in milliseconds using TODAY'S DATE as reference.
3. Present results clearly with titles, locations, closing dates and URLs.
4. If nothing is found, suggest alternative or broader searches.
5. If a tool reports an error, explain the problem in plain language.`,
		now.Format("January 2, 2006"), now.UnixMilli())
}
