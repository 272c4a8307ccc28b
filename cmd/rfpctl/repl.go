package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/GregMSThompson/solicitation-agent/internal/bootstrap"
	"github.com/GregMSThompson/solicitation-agent/internal/dto"
	"github.com/GregMSThompson/solicitation-agent/internal/services"
	"github.com/GregMSThompson/solicitation-agent/pkg/logger"
)

type chatSender interface {
	SendMessage(ctx context.Context, text, threadID string) (dto.ChatResult, error)
}

func replCMD() *cobra.Command {
	var thread string

	var repl = &cobra.Command{
		Use:   "repl",
		Short: "Hold a conversation on stdin, one question per line",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			bs, err := bootstrap.Run(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer bs.Close()

			chatsvc := services.NewChatService(bs.Vertex, bs.Index, services.ChatOptions{
				Model:        cfg.VertexModel,
				ModelTimeout: cfg.ModelTimeout,
				IndexTimeout: cfg.IndexTimeout,
			})
			defer chatsvc.Close()

			ctx := logger.ToContext(cmd.Context(), bs.Log)
			return runREPL(ctx, chatsvc, thread, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	repl.Flags().StringVar(&thread, "thread", services.DefaultThreadID, "conversation thread id")

	return repl
}

// runREPL reads questions until EOF or "exit". A failed turn is reported and
// the conversation continues.
func runREPL(ctx context.Context, chat chatSender, thread string, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, "> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
		case "exit", "quit":
			return nil
		default:
			res, err := chat.SendMessage(ctx, line, thread)
			if err != nil {
				fmt.Fprintln(out, "error:", err)
			} else {
				printResult(out, res)
			}
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		fmt.Fprint(out, "> ")
	}
	return scanner.Err()
}
