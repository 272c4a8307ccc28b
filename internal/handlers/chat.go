package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/solicitation-agent/internal/dto"
	"github.com/GregMSThompson/solicitation-agent/internal/errs"
	"github.com/GregMSThompson/solicitation-agent/internal/response"
)

type chatService interface {
	SendMessage(ctx context.Context, text, threadID string) (dto.ChatResult, error)
}

type chatHandlers struct {
	ResponseHandler response.ResponseHandler
	ChatSvc         chatService
}

func NewChatHandlers(deps *Deps) *chatHandlers {
	return &chatHandlers{
		ResponseHandler: deps.ResponseHandler,
		ChatSvc:         deps.ChatSvc,
	}
}

func (h *chatHandlers) ChatRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/chat", h.Chat)
	return r
}

func (h *chatHandlers) Chat(w http.ResponseWriter, r *http.Request) {
	var body dto.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("request body must be valid JSON"))
		return
	}
	if strings.TrimSpace(body.Message) == "" {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("message is required"))
		return
	}

	// An empty chatKey maps to the default thread inside the service.
	resp, err := h.ChatSvc.SendMessage(r.Context(), body.Message, body.ChatKey)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}
