package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GregMSThompson/solicitation-agent/internal/bootstrap"
	"github.com/GregMSThompson/solicitation-agent/internal/config"
	"github.com/GregMSThompson/solicitation-agent/internal/handlers"
	"github.com/GregMSThompson/solicitation-agent/internal/response"
	"github.com/GregMSThompson/solicitation-agent/internal/router"
	"github.com/GregMSThompson/solicitation-agent/internal/services"
)

const shutdownTimeout = 10 * time.Second

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(ctx, cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// services
	chatsvc := services.NewChatService(bs.Vertex, bs.Index, services.ChatOptions{
		Model:        cfg.VertexModel,
		ModelTimeout: cfg.ModelTimeout,
		IndexTimeout: cfg.IndexTimeout,
		Metrics:      bs.Metrics,
	})
	defer chatsvc.Close()

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = response.New(bs.Log)
	deps.ChatSvc = chatsvc
	deps.Metrics = bs.Metrics.Handler()

	// router
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			bs.Log.Error("server shutdown failed", "error", err)
		}
	}()

	bs.Log.Info("server listening", "addr", srv.Addr, "index", cfg.AlgoliaIndex, "model", cfg.VertexModel)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		exitOnError("server start failed", err, bs.Log)
	}
}
