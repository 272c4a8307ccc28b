package services

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/GregMSThompson/solicitation-agent/internal/dto"
	"github.com/GregMSThompson/solicitation-agent/internal/errs"
	"github.com/GregMSThompson/solicitation-agent/internal/metrics"
	"github.com/GregMSThompson/solicitation-agent/pkg/logger"
)

const maxParallelTools = 4

type vertexChatClient interface {
	StartChat(ctx context.Context, cfg dto.VertexChatConfig) (dto.VertexChat, error)
}

type ChatOptions struct {
	Model        string
	ModelTimeout time.Duration
	IndexTimeout time.Duration
	Metrics      *metrics.Agent
	ClockNow     func() time.Time
}

type chatService struct {
	vertex       vertexChatClient
	schema       *schemaDiscoverer
	tools        *rfpTools
	metrics      *metrics.Agent
	model        string
	modelTimeout time.Duration
	clockNow     func() time.Time

	mu       sync.RWMutex
	sessions map[string]*ChatSession
	creating singleflight.Group
}

func NewChatService(vertex vertexChatClient, index indexClient, opts ChatOptions) *chatService {
	clockNow := opts.ClockNow
	if clockNow == nil {
		clockNow = time.Now
	}
	return &chatService{
		vertex:       vertex,
		schema:       newSchemaDiscoverer(index, opts.IndexTimeout, opts.Metrics),
		tools:        newRFPTools(index, newDateRangeTranslator(clockNow), opts.IndexTimeout, opts.Metrics),
		metrics:      opts.Metrics,
		model:        opts.Model,
		modelTimeout: opts.ModelTimeout,
		clockNow:     clockNow,
		sessions:     make(map[string]*ChatSession),
	}
}

// SendMessage runs one user turn: a model round, the requested tools, and a
// second model round with the tool results. Only model failures are returned
// as errors; tool failures are reported to the model inside the envelope.
func (s *chatService) SendMessage(ctx context.Context, text, threadID string) (dto.ChatResult, error) {
	threadID = normalizeThreadID(threadID)
	log, ctx := logger.With(ctx, "thread_id", threadID, "turn_id", uuid.NewString())

	sess, err := s.GetOrCreateSession(ctx, threadID)
	if err != nil {
		return dto.ChatResult{}, err
	}
	sess.turn.Lock()
	defer sess.turn.Unlock()

	resp, err := s.send(ctx, sess, 1, dto.VertexChatMessage{Text: text})
	if err != nil {
		return dto.ChatResult{}, err
	}
	if len(resp.ToolCalls) == 0 {
		log.Info("chat turn completed", "function_calls", 0)
		return dto.ChatResult{Response: resp.Text, Sources: []dto.SearchResultRecord{}}, nil
	}

	log.Info("model requested tools", "count", len(resp.ToolCalls))
	outcomes := s.executeToolCalls(ctx, resp.ToolCalls)

	results := make([]dto.VertexToolResult, 0, len(outcomes))
	sources := []dto.SearchResultRecord{}
	for _, o := range outcomes {
		results = append(results, o.result)
		sources = append(sources, o.sources...)
	}

	final, err := s.send(ctx, sess, 2, dto.VertexChatMessage{ToolResults: results})
	if err != nil {
		return dto.ChatResult{}, err
	}
	if len(final.ToolCalls) > 0 {
		log.Warn("ignoring tool calls requested after the tool round", "count", len(final.ToolCalls))
	}

	log.Info("chat turn completed", "function_calls", len(resp.ToolCalls), "sources", len(sources))
	return dto.ChatResult{
		Response:      final.Text,
		FunctionCalls: len(resp.ToolCalls),
		Sources:       sources,
	}, nil
}

func (s *chatService) send(ctx context.Context, sess *ChatSession, round int, msg dto.VertexChatMessage) (dto.VertexGenerateResponse, error) {
	rctx, cancel := withTimeout(ctx, s.modelTimeout)
	defer cancel()

	label := strconv.Itoa(round)
	resp, err := sess.chat.SendMessage(rctx, msg)
	if err != nil {
		s.metrics.ModelRequest(label, "error")
		logger.FromContext(ctx).Error("model request failed", "round", round, "error", err)
		return dto.VertexGenerateResponse{}, errs.NewExternalServiceError("vertex", "error generating response", err)
	}
	s.metrics.ModelRequest(label, "ok")
	return resp, nil
}

type toolOutcome struct {
	result  dto.VertexToolResult
	sources []dto.SearchResultRecord
}

// executeToolCalls runs independent index reads concurrently; outcomes keep
// the order in which the model requested them.
func (s *chatService) executeToolCalls(ctx context.Context, calls []dto.VertexToolCall) []toolOutcome {
	outcomes := make([]toolOutcome, len(calls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelTools)
	for i, call := range calls {
		g.Go(func() error {
			outcomes[i] = s.executeTool(gctx, call)
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

func (s *chatService) executeTool(ctx context.Context, call dto.VertexToolCall) toolOutcome {
	log := logger.FromContext(ctx)
	log.Info("executing tool", "tool", call.Name, "args", call.Args)

	switch call.Name {
	case toolSearch:
		args, err := decodeArgs[dto.SearchArgs](call.Args)
		if err != nil {
			return s.toolFailure(ctx, call.Name, fmt.Sprintf("invalid arguments for %s: %v", call.Name, err))
		}
		res, err := s.tools.Search(ctx, args)
		if err != nil {
			return s.toolFailure(ctx, call.Name, err.Error())
		}
		s.metrics.ToolCall(call.Name, "ok")
		return toolOutcome{result: toolEnvelope(call.Name, res), sources: res.Results}

	case toolStatistics:
		args, err := decodeArgs[dto.StatisticsArgs](call.Args)
		if err != nil {
			return s.toolFailure(ctx, call.Name, fmt.Sprintf("invalid arguments for %s: %v", call.Name, err))
		}
		if args.FacetBy == "" {
			args.FacetBy = defaultFacet
		}
		if !slices.Contains(statisticsFacets, args.FacetBy) {
			return s.toolFailure(ctx, call.Name, fmt.Sprintf("unsupported facet_by: %s", args.FacetBy))
		}
		res, err := s.tools.Statistics(ctx, args)
		if err != nil {
			return s.toolFailure(ctx, call.Name, err.Error())
		}
		s.metrics.ToolCall(call.Name, "ok")
		out := toolOutcome{result: toolEnvelope(call.Name, res)}
		if res.TotalRFPs > 0 {
			out.sources = []dto.SearchResultRecord{statisticsSource(res)}
		}
		return out

	default:
		return s.toolFailure(ctx, call.Name, "Unknown function: "+call.Name)
	}
}

func (s *chatService) toolFailure(ctx context.Context, name, message string) toolOutcome {
	logger.FromContext(ctx).Warn("tool failed", "tool", name, "error", message)
	s.metrics.ToolCall(name, "error")
	return toolOutcome{result: toolEnvelope(name, dto.ToolFailure{Success: false, Error: message})}
}

// toolEnvelope wraps the serialized tool payload the way the model receives it:
// {"result": "<json envelope>"}.
func toolEnvelope(name string, payload any) dto.VertexToolResult {
	raw, err := json.Marshal(payload)
	if err != nil {
		raw, _ = json.Marshal(dto.ToolFailure{Success: false, Error: err.Error()})
	}
	return dto.VertexToolResult{
		Name:     name,
		Response: map[string]any{"result": string(raw)},
	}
}

func statisticsSource(res dto.StatisticsToolResult) dto.SearchResultRecord {
	return dto.SearchResultRecord{
		Title:       fmt.Sprintf("Statistical Analysis of %d RFPs", res.TotalRFPs),
		Description: "Analyzed by " + res.FacetField,
		Site:        "Statistics",
		Categories:  []string{},
		Keywords:    []string{},
	}
}

func decodeArgs[T any](args map[string]any) (T, error) {
	var out T
	if len(args) == 0 {
		return out, nil
	}
	raw, err := json.Marshal(args)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, err
	}
	return out, nil
}
