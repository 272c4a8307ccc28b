package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/GregMSThompson/solicitation-agent/internal/handlers"
	"github.com/GregMSThompson/solicitation-agent/internal/middleware"
)

func NewRouter(deps *handlers.Deps) chi.Router {
	r := chi.NewRouter()

	lm := middleware.NewLoggerMiddleware(deps.Log)
	r.Use(chimiddleware.RequestID)
	r.Use(lm.LoggerMiddleware)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics)
	}

	ch := handlers.NewChatHandlers(deps)
	r.Mount("/ai", ch.ChatRoutes())
	return r
}
