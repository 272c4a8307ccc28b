// Package response writes the JSON envelopes returned by the HTTP API.
package response

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/GregMSThompson/solicitation-agent/pkg/logger"
)

type ResponseHandler interface {
	WriteSuccess(w http.ResponseWriter, r *http.Request, status int, data any)
	WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string)
	HandleError(w http.ResponseWriter, r *http.Request, err error)
}

type SuccessEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

type responseHandler struct {
	Log *slog.Logger
}

func New(log *slog.Logger) *responseHandler {
	return &responseHandler{Log: log}
}

func (h *responseHandler) WriteSuccess(w http.ResponseWriter, r *http.Request, status int, data any) {
	h.writeJSON(w, r, status, SuccessEnvelope{Success: true, Data: data})
}

// writeJSON sends body with status. Headers are already out when encoding
// fails, so the failure can only be logged.
func (h *responseHandler) writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log := logger.FromContext(r.Context())
		if log == slog.Default() && h.Log != nil {
			log = h.Log
		}
		log.Error("failed to encode response", "error", err, "status", status)
	}
}
