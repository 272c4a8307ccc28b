package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GregMSThompson/solicitation-agent/internal/bootstrap"
	"github.com/GregMSThompson/solicitation-agent/internal/services"
	"github.com/GregMSThompson/solicitation-agent/internal/store"
	"github.com/GregMSThompson/solicitation-agent/pkg/logger"
)

func syncIndexCMD() *cobra.Command {
	var collection string
	var batch int

	var sync = &cobra.Command{
		Use:   "sync-index",
		Short: "Copy solicitations from Firestore into the search index",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			if collection != "" {
				cfg.SyncCollection = collection
			}
			bs, err := bootstrap.RunSync(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer bs.Close()

			source := store.NewSolicitationStore(bs.Firestore, cfg.SyncCollection)
			syncsvc := services.NewIndexSyncService(source, bs.Index, batch)

			ctx := logger.ToContext(cmd.Context(), bs.Log)
			report, err := syncsvc.Sync(ctx)
			fmt.Fprintf(cmd.OutOrStdout(), "read %d, saved %d, skipped %d\n", report.Read, report.Saved, report.Skipped)
			return err
		},
	}
	sync.Flags().StringVar(&collection, "collection", "", "Firestore collection (default $SYNC_COLLECTION)")
	sync.Flags().IntVar(&batch, "batch", services.DefaultSyncBatch, "documents per index batch")

	return sync
}
