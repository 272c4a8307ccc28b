package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/GregMSThompson/solicitation-agent/internal/config"
)

// overrides collects the persistent flags; empty values keep the environment.
var overrides config.Config

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var root = &cobra.Command{
		Use:           "rfpctl",
		Short:         "Ask questions about the solicitations index",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&overrides.AlgoliaIndex, "index", "", "index name (default $ALGOLIA_INDEX_NAME)")
	root.PersistentFlags().StringVar(&overrides.VertexModel, "model", "", "model name (default $VERTEXMODEL)")
	root.PersistentFlags().StringVar(&overrides.LogLevel, "log-level", "", "log level (default $LOGLEVEL)")
	root.PersistentFlags().DurationVar(&overrides.ModelTimeout, "model-timeout", 0, "per-round model timeout")

	root.AddCommand(askCMD(), replCMD(), syncIndexCMD())
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func loadConfig() *config.Config {
	cfg := config.New()
	cfg.Override(overrides)
	return cfg
}
