package services

import (
	"context"
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/GregMSThompson/solicitation-agent/internal/dto"
	"github.com/GregMSThompson/solicitation-agent/internal/metrics"
	"github.com/GregMSThompson/solicitation-agent/pkg/helpers"
)

const (
	defaultHitsPerPage = 5
	maxHitsPerPage     = 50
	defaultFacet       = "cnStatus"
	allTime            = "all_time"
)

// statisticsFacets are the only fields get_rfp_statistics may group by.
var statisticsFacets = []string{"cnStatus", "location", "site"}

type indexClient interface {
	Search(ctx context.Context, q dto.IndexQuery) (dto.IndexResult, error)
}

// rfpTools implements the two tools the model can call against the index.
type rfpTools struct {
	index   indexClient
	dates   *dateRangeTranslator
	timeout time.Duration
	metrics *metrics.Agent
}

func newRFPTools(index indexClient, dates *dateRangeTranslator, timeout time.Duration, m *metrics.Agent) *rfpTools {
	return &rfpTools{index: index, dates: dates, timeout: timeout, metrics: m}
}

func (t *rfpTools) Search(ctx context.Context, args dto.SearchArgs) (dto.SearchToolResult, error) {
	hits := defaultHitsPerPage
	if args.HitsPerPage != nil && *args.HitsPerPage > 0 {
		hits = helpers.Clamp(*args.HitsPerPage, 1, maxHitsPerPage)
	}

	res, err := t.query(ctx, "search", dto.IndexQuery{
		Query:                args.Query,
		Filters:              composeFilters(t.dates.Translate(args.DateRange), args.Filters),
		HitsPerPage:          hits,
		AttributesToRetrieve: []string{"*"},
	})
	if err != nil {
		return dto.SearchToolResult{}, err
	}

	records := make([]dto.SearchResultRecord, 0, len(res.Hits))
	for _, hit := range res.Hits {
		records = append(records, toSearchResultRecord(hit))
	}
	return dto.SearchToolResult{
		Success:           true,
		TotalMatchingRFPs: res.NbHits,
		ReturnedResults:   len(records),
		Results:           records,
	}, nil
}

func (t *rfpTools) Statistics(ctx context.Context, args dto.StatisticsArgs) (dto.StatisticsToolResult, error) {
	res, err := t.query(ctx, "statistics", dto.IndexQuery{
		Filters:     composeFilters(t.dates.Translate(args.DateRange), args.Filters),
		HitsPerPage: 0,
		Facets:      []string{args.FacetBy},
	})
	if err != nil {
		return dto.StatisticsToolResult{}, err
	}

	dateRange := args.DateRange
	if dateRange == "" {
		dateRange = allTime
	}
	return dto.StatisticsToolResult{
		Success:    true,
		TotalRFPs:  res.NbHits,
		FacetField: args.FacetBy,
		DateRange:  dateRange,
		Breakdown:  buildBreakdown(res.Facets[args.FacetBy], res.NbHits),
	}, nil
}

func (t *rfpTools) query(ctx context.Context, operation string, q dto.IndexQuery) (dto.IndexResult, error) {
	qctx, cancel := withTimeout(ctx, t.timeout)
	defer cancel()

	started := time.Now()
	defer t.metrics.ObserveIndexQuery(operation, started)
	return t.index.Search(qctx, q)
}

// composeFilters ANDs the date filter with caller filters, parenthesizing
// both only when both are present.
func composeFilters(dateFilter, filters string) string {
	switch {
	case dateFilter != "" && filters != "":
		return "(" + dateFilter + ") AND (" + filters + ")"
	case dateFilter != "":
		return dateFilter
	default:
		return filters
	}
}

func buildBreakdown(counts map[string]int, total int) []dto.StatisticsBreakdown {
	out := make([]dto.StatisticsBreakdown, 0, len(counts))
	for value, count := range counts {
		out = append(out, dto.StatisticsBreakdown{
			Value:      value,
			Count:      count,
			Percentage: percentage(count, total),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}

func percentage(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*10000) / 100
}

func toSearchResultRecord(hit map[string]any) dto.SearchResultRecord {
	title := stringField(hit, "title")
	if title == "" {
		title = "Untitled"
	}
	return dto.SearchResultRecord{
		Title:              title,
		Description:        stringField(hit, "description"),
		Issuer:             stringField(hit, "issuer"),
		Location:           stringField(hit, "location"),
		Site:               stringField(hit, "site"),
		SiteURL:            stringField(hit, "siteUrl"),
		ScrapedDate:        formatTimestamp(hit["created"]),
		ClosingDate:        formatTimestamp(hit["closingDate"]),
		PublishDate:        formatTimestamp(hit["publishDate"]),
		QuestionsDueByDate: formatTimestamp(hit["questionsDueByDate"]),
		CNStatus:           stringField(hit, "cnStatus"),
		CNType:             stringField(hit, "cnType"),
		Categories:         stringsField(hit, "categories"),
		Keywords:           stringsField(hit, "keywords"),
	}
}

func stringField(hit map[string]any, key string) string {
	s, _ := hit[key].(string)
	return s
}

func stringsField(hit map[string]any, key string) []string {
	out := []string{}
	switch v := hit[key].(type) {
	case []string:
		out = append(out, v...)
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
	}
	return out
}

// formatTimestamp renders an epoch-millisecond value as YYYY-MM-DD in UTC.
// Absent, zero, non-numeric and out-of-range values give nil.
func formatTimestamp(v any) *string {
	ms, ok := toMillis(v)
	if !ok || ms == 0 {
		return nil
	}
	t := time.UnixMilli(ms).UTC()
	if t.Year() < 1 || t.Year() > 9999 {
		return nil
	}
	return helpers.Ptr(t.Format(time.DateOnly))
}

func toMillis(v any) (int64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		return int64(n), true
	case int64:
		return n, true
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > 8.64e15 {
		return 0, false
	}
	return int64(f), true
}
