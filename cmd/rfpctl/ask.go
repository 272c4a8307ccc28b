package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/GregMSThompson/solicitation-agent/internal/bootstrap"
	"github.com/GregMSThompson/solicitation-agent/internal/services"
	"github.com/GregMSThompson/solicitation-agent/pkg/logger"
)

func askCMD() *cobra.Command {
	var thread string

	var ask = &cobra.Command{
		Use:   "ask [question...]",
		Short: "Send one question and print the answer with its sources",
		Args:  cobra.MinimumNArgs(1),
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
			res, err := chatsvc.SendMessage(ctx, strings.Join(args, " "), thread)
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), res)
			return nil
		},
	}
	ask.Flags().StringVar(&thread, "thread", services.DefaultThreadID, "conversation thread id")

	return ask
}
