package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/GregMSThompson/solicitation-agent/internal/errs"
	"github.com/GregMSThompson/solicitation-agent/pkg/logger"
)

type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (h *responseHandler) WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	h.writeJSON(w, r, status, ErrorResponse{Code: code, Message: message})
}

func (h *responseHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	var (
		notFound   *errs.NotFoundError
		validation *errs.ValidationError
		configErr  *errs.ConfigError
		dbErr      *errs.DatabaseError
		extErr     *errs.ExternalServiceError
		syntaxErr  *json.SyntaxError
	)
	switch {
	case errors.As(err, &notFound):
		log.Warn("resource not found", "error", notFound.Message)
		h.WriteError(w, r, http.StatusNotFound, "not_found", notFound.Message)

	case errors.As(err, &validation):
		log.Warn("validation failed", "error", validation.Message)
		h.WriteError(w, r, http.StatusBadRequest, "invalid_input", validation.Message)

	case errors.As(err, &syntaxErr):
		log.Warn("malformed request body", "error", err)
		h.WriteError(w, r, http.StatusBadRequest, "invalid_input", "request body must be valid JSON")

	case errors.As(err, &configErr):
		log.Error("configuration error", "field", configErr.Field, "error", configErr.Message)
		h.WriteError(w, r, http.StatusInternalServerError, "internal_error",
			"An error occurred")

	case errors.As(err, &dbErr):
		log.Error("database error",
			"operation", dbErr.Operation,
			"error", dbErr.Error())
		h.WriteError(w, r, http.StatusInternalServerError, "internal_error",
			"An error occurred")

	case errors.As(err, &extErr):
		level := slog.LevelError
		if extErr.Transient {
			level = slog.LevelWarn
		}
		log.Log(r.Context(), level, "external service error",
			"service", extErr.Service,
			"transient", extErr.Transient,
			"error", extErr.Error())

		status := http.StatusBadGateway
		if extErr.Transient {
			status = http.StatusServiceUnavailable
		}
		h.WriteError(w, r, status, "service_unavailable",
			"Service temporarily unavailable")

	default:
		log.Error("unexpected error",
			"error", err,
			"type", fmt.Sprintf("%T", err))
		h.WriteError(w, r, http.StatusInternalServerError, "internal_error",
			"An unexpected error occurred")
	}
}
