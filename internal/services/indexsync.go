package services

import (
	"context"
	"fmt"

	"github.com/GregMSThompson/solicitation-agent/internal/dto"
	"github.com/GregMSThompson/solicitation-agent/internal/errs"
	"github.com/GregMSThompson/solicitation-agent/pkg/logger"
)

const DefaultSyncBatch = 200

type solicitationReader interface {
	EachPage(ctx context.Context, pageSize int, fn func(records []map[string]any) error) error
}

type indexWriter interface {
	SaveObjects(ctx context.Context, records []map[string]any) error
}

type indexSyncService struct {
	source solicitationReader
	index  indexWriter
	batch  int
}

func NewIndexSyncService(source solicitationReader, index indexWriter, batch int) *indexSyncService {
	if batch <= 0 {
		batch = DefaultSyncBatch
	}
	return &indexSyncService{source: source, index: index, batch: batch}
}

// Sync copies every solicitation into the search index, keyed by objectID.
// Records with neither an id nor an objectID are skipped.
func (s *indexSyncService) Sync(ctx context.Context) (dto.SyncReport, error) {
	log := logger.FromContext(ctx)
	report := dto.SyncReport{}

	err := s.source.EachPage(ctx, s.batch, func(records []map[string]any) error {
		report.Read += len(records)

		batch := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			objectID, ok := recordObjectID(rec)
			if !ok {
				log.Warn("skipping record without id", "title", rec["title"])
				report.Skipped++
				continue
			}
			out := make(map[string]any, len(rec)+1)
			for k, v := range rec {
				out[k] = v
			}
			out["objectID"] = objectID
			batch = append(batch, out)
		}

		if err := s.index.SaveObjects(ctx, batch); err != nil {
			return errs.NewExternalServiceError("algolia", "failed to save index records", err)
		}
		report.Saved += len(batch)
		log.Info("synced index page", "read", report.Read, "saved", report.Saved)
		return nil
	})
	if err != nil {
		return report, err
	}

	log.Info("index sync completed", "read", report.Read, "saved", report.Saved, "skipped", report.Skipped)
	return report, nil
}

func recordObjectID(rec map[string]any) (string, bool) {
	for _, key := range []string{"id", "objectID"} {
		switch v := rec[key].(type) {
		case nil:
			continue
		case string:
			if v != "" {
				return v, true
			}
		default:
			return fmt.Sprint(v), true
		}
	}
	return "", false
}
