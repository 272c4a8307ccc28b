package algoliaclient

import (
	"context"
	"log/slog"
	"time"

	"github.com/algolia/algoliasearch-client-go/v3/algolia/opt"
	"github.com/algolia/algoliasearch-client-go/v3/algolia/search"

	"github.com/GregMSThompson/solicitation-agent/internal/dto"
)

type searchIndex interface {
	Search(query string, opts ...interface{}) (search.QueryRes, error)
	SaveObjects(objects interface{}, opts ...interface{}) (search.GroupBatchRes, error)
}

type Adapter struct {
	index searchIndex
	log   *slog.Logger
}

// NewAdapter opens indexName with the given key. readTimeout bounds every
// search request at the transport level.
func NewAdapter(log *slog.Logger, appID, apiKey, indexName string, readTimeout time.Duration) *Adapter {
	client := search.NewClientWithConfig(search.Configuration{
		AppID:       appID,
		APIKey:      apiKey,
		ReadTimeout: readTimeout,
	})
	return &Adapter{index: client.InitIndex(indexName), log: log}
}

func (a *Adapter) Search(ctx context.Context, q dto.IndexQuery) (dto.IndexResult, error) {
	res, err := a.index.Search(q.Query, searchOptions(ctx, q)...)
	if err != nil {
		return dto.IndexResult{}, err
	}
	return dto.IndexResult{
		NbHits: res.NbHits,
		Hits:   res.Hits,
		Facets: res.Facets,
	}, nil
}

// SaveObjects upserts records keyed by their objectID and waits until the
// index has applied them.
func (a *Adapter) SaveObjects(ctx context.Context, records []map[string]any) error {
	if len(records) == 0 {
		return nil
	}
	res, err := a.index.SaveObjects(records, ctx)
	if err != nil {
		return err
	}
	if err := res.Wait(ctx); err != nil {
		return err
	}
	if a.log != nil {
		a.log.Debug("saved index records", "count", len(records))
	}
	return nil
}

func searchOptions(ctx context.Context, q dto.IndexQuery) []interface{} {
	opts := []interface{}{ctx, opt.HitsPerPage(q.HitsPerPage)}
	if q.Filters != "" {
		opts = append(opts, opt.Filters(q.Filters))
	}
	if len(q.AttributesToRetrieve) > 0 {
		opts = append(opts, opt.AttributesToRetrieve(q.AttributesToRetrieve...))
	}
	if len(q.Facets) > 0 {
		opts = append(opts, opt.Facets(q.Facets...))
	}
	return opts
}
