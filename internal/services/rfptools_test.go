package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/GregMSThompson/solicitation-agent/internal/dto"
	"github.com/GregMSThompson/solicitation-agent/pkg/helpers"
)

var testNow = time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC)

func newTestTools(index indexClient) *rfpTools {
	return newRFPTools(index, newDateRangeTranslator(helpers.FixedClock(testNow)), time.Second, nil)
}

func TestComposeFilters(t *testing.T) {
	cases := []struct {
		date, filters, want string
	}{
		{"created>=1", "location:Texas", "(created>=1) AND (location:Texas)"},
		{"created>=1", "", "created>=1"},
		{"", "location:Texas", "location:Texas"},
		{"", "", ""},
	}
	for _, tc := range cases {
		if got := composeFilters(tc.date, tc.filters); got != tc.want {
			t.Fatalf("composeFilters(%q, %q) = %q, want %q", tc.date, tc.filters, got, tc.want)
		}
	}
}

func TestSearchBuildsQueryAndNormalizesHits(t *testing.T) {
	index := &fakeIndex{search: func(q dto.IndexQuery) (dto.IndexResult, error) {
		return dto.IndexResult{
			NbHits: 12,
			Hits: []map[string]any{
				{
					"title":       "Managed IT Services",
					"issuer":      "City of Austin",
					"location":    "Texas",
					"siteUrl":     "https://example.gov/rfp/1",
					"created":     float64(time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC).UnixMilli()),
					"closingDate": "1751328000000",
					"publishDate": "soon",
					"categories":  []any{"IT Services", 7, "Consulting"},
					"cnStatus":    "pursuing",
				},
				{"description": "no title here"},
			},
		}, nil
	}}
	tools := newTestTools(index)

	res, err := tools.Search(context.Background(), dto.SearchArgs{
		Query:       "managed services",
		Filters:     "location:Texas",
		DateRange:   "today",
		HitsPerPage: helpers.Ptr(500),
	})
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}

	q := index.recorded()[0]
	if q.Query != "managed services" || q.HitsPerPage != maxHitsPerPage {
		t.Fatalf("unexpected query: %+v", q)
	}
	wantFilter := "(" + newDateRangeTranslator(helpers.FixedClock(testNow)).Translate("today") + ") AND (location:Texas)"
	if q.Filters != wantFilter {
		t.Fatalf("filter mismatch:\n got %q\nwant %q", q.Filters, wantFilter)
	}
	if len(q.AttributesToRetrieve) != 1 || q.AttributesToRetrieve[0] != "*" {
		t.Fatalf("expected all attributes, got %v", q.AttributesToRetrieve)
	}

	if !res.Success || res.TotalMatchingRFPs != 12 || res.ReturnedResults != 2 {
		t.Fatalf("unexpected result header: %+v", res)
	}
	first := res.Results[0]
	if helpers.Value(first.ScrapedDate) != "2025-06-01" {
		t.Fatalf("scrapedDate mismatch: %v", first.ScrapedDate)
	}
	if helpers.Value(first.ClosingDate) != "2025-07-01" {
		t.Fatalf("closingDate mismatch: %v", first.ClosingDate)
	}
	if first.PublishDate != nil || first.QuestionsDueByDate != nil {
		t.Fatalf("expected nil dates for invalid/absent values")
	}
	if len(first.Categories) != 2 || first.Categories[1] != "Consulting" {
		t.Fatalf("categories mismatch: %v", first.Categories)
	}
	if first.Keywords == nil || len(first.Keywords) != 0 {
		t.Fatalf("expected empty keywords slice, got %#v", first.Keywords)
	}
	if res.Results[1].Title != "Untitled" || res.Results[1].Issuer != "" {
		t.Fatalf("expected defaults on sparse hit: %+v", res.Results[1])
	}
}

func TestSearchDefaultsWithoutFilters(t *testing.T) {
	index := &fakeIndex{}
	tools := newTestTools(index)

	if _, err := tools.Search(context.Background(), dto.SearchArgs{Query: "oracle", DateRange: "next_sprint"}); err != nil {
		t.Fatalf("Search error: %v", err)
	}
	q := index.recorded()[0]
	if q.Filters != "" {
		t.Fatalf("expected no filter, got %q", q.Filters)
	}
	if q.HitsPerPage != defaultHitsPerPage {
		t.Fatalf("expected default page size, got %d", q.HitsPerPage)
	}
}

func TestSearchPropagatesIndexError(t *testing.T) {
	index := &fakeIndex{search: func(q dto.IndexQuery) (dto.IndexResult, error) {
		return dto.IndexResult{}, errors.New("index unavailable")
	}}
	tools := newTestTools(index)

	if _, err := tools.Search(context.Background(), dto.SearchArgs{Query: "x"}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestStatisticsBreakdown(t *testing.T) {
	index := &fakeIndex{search: func(q dto.IndexQuery) (dto.IndexResult, error) {
		return dto.IndexResult{
			NbHits: 40,
			Facets: map[string]map[string]int{
				"cnStatus": {"monitor": 10, "pursuing": 25, "notPursuing": 5},
			},
		}, nil
	}}
	tools := newTestTools(index)

	res, err := tools.Statistics(context.Background(), dto.StatisticsArgs{FacetBy: "cnStatus", Filters: "site:bidnet"})
	if err != nil {
		t.Fatalf("Statistics error: %v", err)
	}

	q := index.recorded()[0]
	if q.Query != "" || q.HitsPerPage != 0 || len(q.Facets) != 1 || q.Facets[0] != "cnStatus" || q.Filters != "site:bidnet" {
		t.Fatalf("unexpected query: %+v", q)
	}
	if res.TotalRFPs != 40 || res.FacetField != "cnStatus" || res.DateRange != "all_time" {
		t.Fatalf("unexpected header: %+v", res)
	}
	want := []dto.StatisticsBreakdown{
		{Value: "pursuing", Count: 25, Percentage: 62.5},
		{Value: "monitor", Count: 10, Percentage: 25},
		{Value: "notPursuing", Count: 5, Percentage: 12.5},
	}
	if len(res.Breakdown) != len(want) {
		t.Fatalf("breakdown length mismatch: %+v", res.Breakdown)
	}
	for i := range want {
		if res.Breakdown[i] != want[i] {
			t.Fatalf("breakdown[%d] = %+v, want %+v", i, res.Breakdown[i], want[i])
		}
	}
}

func TestPercentage(t *testing.T) {
	if got := percentage(10, 40); got != 25.0 {
		t.Fatalf("percentage(10, 40) = %v", got)
	}
	if got := percentage(1, 3); got != 33.33 {
		t.Fatalf("percentage(1, 3) = %v", got)
	}
	if got := percentage(5, 0); got != 0 {
		t.Fatalf("percentage with zero total = %v", got)
	}
}

func TestBuildBreakdownZeroTotal(t *testing.T) {
	out := buildBreakdown(map[string]int{"a": 2, "b": 2}, 0)
	for _, b := range out {
		if b.Percentage != 0 {
			t.Fatalf("expected 0 percentage, got %+v", b)
		}
	}
	if out[0].Value != "a" {
		t.Fatalf("ties should sort by value: %+v", out)
	}
}

func TestFormatTimestamp(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want string
	}{
		{"float", float64(1735689600000), "2025-01-01"},
		{"int64", int64(1735689600000), "2025-01-01"},
		{"string", "1735689600000", "2025-01-01"},
		{"nil", nil, ""},
		{"zero", float64(0), ""},
		{"garbage", "tomorrow", ""},
		{"huge", float64(1e18), ""},
		{"bool", true, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := formatTimestamp(tc.in)
			if tc.want == "" {
				if got != nil {
					t.Fatalf("expected nil, got %q", *got)
				}
				return
			}
			if helpers.Value(got) != tc.want {
				t.Fatalf("formatTimestamp(%v) = %v, want %q", tc.in, got, tc.want)
			}
		})
	}
}
