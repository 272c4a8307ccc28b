package handlers

import (
	"log/slog"
	"net/http"

	"github.com/GregMSThompson/solicitation-agent/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	ChatSvc         chatService
	Metrics         http.Handler
}
