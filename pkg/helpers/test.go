package helpers

import (
	"context"
	"log/slog"
	"time"

	"github.com/GregMSThompson/solicitation-agent/pkg/logger"
)

// TestCtx returns a context carrying a discard logger.
func TestCtx() context.Context {
	log := slog.New(logger.NewTestHandler(slog.LevelDebug))
	return logger.ToContext(context.Background(), log)
}

// FixedClock returns a clock func that always reports t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
