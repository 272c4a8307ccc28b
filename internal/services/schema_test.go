package services

import (
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/GregMSThompson/solicitation-agent/internal/dto"
	"github.com/GregMSThompson/solicitation-agent/pkg/helpers"
)

func TestSchemaDiscoverDetectsNumericDateFields(t *testing.T) {
	index := &fakeIndex{search: func(q dto.IndexQuery) (dto.IndexResult, error) {
		return dto.IndexResult{Hits: []map[string]any{
			{
				"title":       "RFP",
				"created":     float64(1735689600000),
				"closingDate": float64(1738368000000),
				"publishDate": "2025-01-01",
				"PostedDate":  float64(1735689600000),
				"budget":      float64(100000),
			},
			{"updated": float64(1)},
		}}, nil
	}}
	d := newSchemaDiscoverer(index, time.Second, nil)

	schema := d.Discover(helpers.TestCtx())

	wantDates := []string{"PostedDate", "closingDate", "created"}
	if !reflect.DeepEqual(schema.DateFields, wantDates) {
		t.Fatalf("date fields = %v, want %v", schema.DateFields, wantDates)
	}
	wantKeys := []string{"PostedDate", "budget", "closingDate", "created", "publishDate", "title"}
	if !reflect.DeepEqual(schema.SampleKeys, wantKeys) {
		t.Fatalf("sample keys = %v, want %v", schema.SampleKeys, wantKeys)
	}
	q := index.recorded()[0]
	if q.Query != "" || q.HitsPerPage != schemaSampleSize {
		t.Fatalf("unexpected sampling query: %+v", q)
	}
}

func TestSchemaDiscoverFallsBack(t *testing.T) {
	cases := map[string]func(q dto.IndexQuery) (dto.IndexResult, error){
		"error": func(q dto.IndexQuery) (dto.IndexResult, error) {
			return dto.IndexResult{}, errors.New("forbidden")
		},
		"empty": func(q dto.IndexQuery) (dto.IndexResult, error) {
			return dto.IndexResult{}, nil
		},
	}
	for name, search := range cases {
		t.Run(name, func(t *testing.T) {
			d := newSchemaDiscoverer(&fakeIndex{search: search}, time.Second, nil)
			if got := d.Discover(helpers.TestCtx()); !reflect.DeepEqual(got, fallbackSchema()) {
				t.Fatalf("expected fallback schema, got %+v", got)
			}
		})
	}
}

func TestSchemaDiscoverCachesResult(t *testing.T) {
	index := &fakeIndex{search: func(q dto.IndexQuery) (dto.IndexResult, error) {
		return dto.IndexResult{}, errors.New("down")
	}}
	d := newSchemaDiscoverer(index, time.Second, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.Discover(helpers.TestCtx())
		}()
	}
	wg.Wait()

	if d.Calls() != 1 || len(index.recorded()) != 1 {
		t.Fatalf("expected one sampling query, got calls=%d queries=%d", d.Calls(), len(index.recorded()))
	}

	d.Reset()
	d.Discover(helpers.TestCtx())
	if d.Calls() != 2 {
		t.Fatalf("expected Reset to allow rediscovery, got %d", d.Calls())
	}
}
