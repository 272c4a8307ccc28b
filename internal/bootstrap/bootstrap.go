package bootstrap

import (
	"context"
	"log/slog"

	"cloud.google.com/go/firestore"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	algoliaclient "github.com/GregMSThompson/solicitation-agent/internal/client/algolia"
	vertexclient "github.com/GregMSThompson/solicitation-agent/internal/client/vertex"
	"github.com/GregMSThompson/solicitation-agent/internal/config"
	"github.com/GregMSThompson/solicitation-agent/internal/metrics"
	"github.com/GregMSThompson/solicitation-agent/pkg/logger"
)

type Bootstrap struct {
	Log     *slog.Logger
	Metrics *metrics.Agent
	Index   *algoliaclient.Adapter
	Vertex  *vertexclient.Adapter
}

// Run wires the clients the search agent needs. Configuration is validated
// before any connection is opened.
func Run(ctx context.Context, cfg *config.Config) (*Bootstrap, error) {
	var err error
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.NewCloudRunHandler)
	if err = cfg.Validate(); err != nil {
		return bs, err
	}
	if err = ResolveSecrets(ctx, cfg); err != nil {
		return bs, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	bs.Metrics = metrics.New(reg)

	bs.Index = algoliaclient.NewAdapter(bs.Log, cfg.AlgoliaAppID, cfg.AlgoliaSearchKey, cfg.AlgoliaIndex, cfg.IndexTimeout)
	bs.Vertex, err = vertexclient.NewAdapter(ctx, bs.Log, cfg.ProjectID, cfg.Region, cfg.VertexModel, cfg.VertexAPIKey)
	if err != nil {
		return bs, err
	}

	return bs, nil
}

func (bs *Bootstrap) Close() error {
	if bs.Vertex == nil {
		return nil
	}
	return bs.Vertex.Close()
}

type SyncBootstrap struct {
	Log       *slog.Logger
	Firestore *firestore.Client
	Index     *algoliaclient.Adapter
}

// RunSync wires the Firestore source and an index client holding the write key.
func RunSync(ctx context.Context, cfg *config.Config) (*SyncBootstrap, error) {
	var err error
	bs := new(SyncBootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.NewCloudRunHandler)
	if err = cfg.ValidateSync(); err != nil {
		return bs, err
	}
	if err = ResolveSecrets(ctx, cfg); err != nil {
		return bs, err
	}

	bs.Firestore, err = firestore.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return bs, err
	}
	bs.Index = algoliaclient.NewAdapter(bs.Log, cfg.AlgoliaAppID, cfg.AlgoliaWriteKey, cfg.AlgoliaIndex, cfg.IndexTimeout)

	return bs, nil
}

func (bs *SyncBootstrap) Close() error {
	if bs.Firestore == nil {
		return nil
	}
	return bs.Firestore.Close()
}
