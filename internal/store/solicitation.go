package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/GregMSThompson/solicitation-agent/internal/errs"
)

const defaultPageSize = 200

type solicitationStore struct {
	client     *firestore.Client
	collection string
}

func NewSolicitationStore(client *firestore.Client, collection string) *solicitationStore {
	return &solicitationStore{client: client, collection: collection}
}

// EachPage walks the collection newest first and hands fn one page of records
// at a time. Timestamps are converted to epoch milliseconds and the document
// id is stored under "id".
func (s *solicitationStore) EachPage(ctx context.Context, pageSize int, fn func(records []map[string]any) error) error {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	var last *firestore.DocumentSnapshot
	for {
		query := s.client.Collection(s.collection).OrderBy("created", firestore.Desc).Limit(pageSize)
		if last != nil {
			query = query.StartAfter(last)
		}

		records, tail, err := s.readPage(ctx, query)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		if err := fn(records); err != nil {
			return err
		}
		if len(records) < pageSize {
			return nil
		}
		last = tail
	}
}

func (s *solicitationStore) readPage(ctx context.Context, query firestore.Query) ([]map[string]any, *firestore.DocumentSnapshot, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	var (
		out  []map[string]any
		last *firestore.DocumentSnapshot
	)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, nil, errs.NewDatabaseError("read", "failed to list solicitations", err)
		}
		out = append(out, toIndexRecord(doc.Ref.ID, doc.Data()))
		last = doc
	}
	return out, last, nil
}

func toIndexRecord(id string, data map[string]any) map[string]any {
	record := normalizeValues(data)
	if id != "" {
		record["id"] = id
	}
	return record
}

func normalizeValues(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch val := v.(type) {
	case time.Time:
		return val.UnixMilli()
	case *time.Time:
		if val == nil {
			return nil
		}
		return val.UnixMilli()
	case map[string]any:
		return normalizeValues(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeValue(item)
		}
		return out
	default:
		return v
	}
}
