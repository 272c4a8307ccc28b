package services

import (
	"context"
	"encoding/json"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/GregMSThompson/solicitation-agent/internal/dto"
	"github.com/GregMSThompson/solicitation-agent/internal/metrics"
	"github.com/GregMSThompson/solicitation-agent/pkg/logger"
)

const schemaSampleSize = 3

var dateFieldNames = map[string]bool{
	"publishdate": true,
	"closingdate": true,
	"created":     true,
	"updated":     true,
	"posteddate":  true,
}

// fallbackSchema is used whenever sampling fails or the index is empty.
func fallbackSchema() dto.SchemaInfo {
	return dto.SchemaInfo{
		DateFields: []string{"closingDate", "created", "publishDate", "updated"},
		SampleKeys: []string{"categories", "keywords", "location", "site", "title"},
	}
}

// schemaDiscoverer samples the index once per process and remembers which
// fields hold epoch-millisecond dates.
type schemaDiscoverer struct {
	index   indexClient
	timeout time.Duration
	metrics *metrics.Agent

	mu     sync.Mutex
	schema *dto.SchemaInfo
	calls  int
}

func newSchemaDiscoverer(index indexClient, timeout time.Duration, m *metrics.Agent) *schemaDiscoverer {
	return &schemaDiscoverer{index: index, timeout: timeout, metrics: m}
}

// Discover never fails: errors and empty samples yield the fallback schema,
// which is cached like a successful result.
func (d *schemaDiscoverer) Discover(ctx context.Context) dto.SchemaInfo {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.schema != nil {
		return *d.schema
	}
	d.calls++

	schema := d.sample(ctx)
	d.schema = &schema
	return schema
}

// Reset drops the cached schema so the next Discover samples again.
func (d *schemaDiscoverer) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.schema = nil
}

// Calls reports how many times the index was sampled.
func (d *schemaDiscoverer) Calls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls
}

func (d *schemaDiscoverer) sample(ctx context.Context) dto.SchemaInfo {
	log := logger.FromContext(ctx)

	qctx, cancel := withTimeout(ctx, d.timeout)
	defer cancel()

	started := time.Now()
	res, err := d.index.Search(qctx, dto.IndexQuery{HitsPerPage: schemaSampleSize})
	d.metrics.ObserveIndexQuery("schema", started)
	if err != nil {
		log.Warn("schema discovery failed, using fallback schema", "error", err)
		return fallbackSchema()
	}
	if len(res.Hits) == 0 {
		log.Warn("schema discovery returned no documents, using fallback schema")
		return fallbackSchema()
	}

	hit := res.Hits[0]
	schema := dto.SchemaInfo{
		DateFields: []string{},
		SampleKeys: make([]string, 0, len(hit)),
	}
	for key, value := range hit {
		schema.SampleKeys = append(schema.SampleKeys, key)
		if isNumber(value) && dateFieldNames[strings.ToLower(key)] {
			schema.DateFields = append(schema.DateFields, key)
		}
	}
	slices.Sort(schema.DateFields)
	slices.Sort(schema.SampleKeys)

	log.Info("discovered index schema", "date_fields", schema.DateFields)
	return schema
}

func isNumber(v any) bool {
	switch v.(type) {
	case float64, float32, int, int32, int64, uint, uint32, uint64, json.Number:
		return true
	default:
		return false
	}
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
