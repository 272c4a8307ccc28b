package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/GregMSThompson/solicitation-agent/pkg/helpers"
)

func rangeFilter(start, end time.Time) string {
	return fmt.Sprintf("created>=%d AND created<=%d", start.UnixMilli(), end.UnixMilli())
}

func TestDateRangeTranslate(t *testing.T) {
	now := time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC)
	d := newDateRangeTranslator(helpers.FixedClock(now))

	cases := []struct {
		expr string
		want string
	}{
		{"today", rangeFilter(
			time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC),
			time.Date(2025, time.June, 15, 23, 59, 59, 0, time.UTC))},
		{"  TODAY ", rangeFilter(
			time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC),
			time.Date(2025, time.June, 15, 23, 59, 59, 0, time.UTC))},
		{"yesterday", rangeFilter(
			time.Date(2025, time.June, 14, 0, 0, 0, 0, time.UTC),
			time.Date(2025, time.June, 14, 23, 59, 59, 0, time.UTC))},
		{"past_week", rangeFilter(now.AddDate(0, 0, -7), now)},
		{"past_7_days", rangeFilter(now.AddDate(0, 0, -7), now)},
		{"past_month", rangeFilter(now.AddDate(0, 0, -30), now)},
		{"past_30_days", rangeFilter(now.AddDate(0, 0, -30), now)},
		{"past_3_months", rangeFilter(now.AddDate(0, 0, -90), now)},
		{"past_90_days", rangeFilter(now.AddDate(0, 0, -90), now)},
		{"2025-01-01_to_2025-01-31", rangeFilter(
			time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, time.January, 31, 23, 59, 59, 999_000_000, time.UTC))},
		{"next_sprint", ""},
		{"", ""},
		{"2025-01-01", ""},
		{"2025-13-01_to_2025-01-31", ""},
		{"2025-01-01_to_soon", ""},
	}
	for _, tc := range cases {
		t.Run(tc.expr, func(t *testing.T) {
			if got := d.Translate(tc.expr); got != tc.want {
				t.Fatalf("Translate(%q) = %q, want %q", tc.expr, got, tc.want)
			}
		})
	}
}

func TestDateRangeTodayBoundsExact(t *testing.T) {
	now := time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC)
	d := newDateRangeTranslator(helpers.FixedClock(now))

	start, end, ok := d.bounds("today")
	if !ok {
		t.Fatalf("expected today to translate")
	}
	if got := start.Format("2006-01-02T15:04:05.000"); got != "2025-06-15T00:00:00.000" {
		t.Fatalf("start mismatch: %s", got)
	}
	if got := end.Format("2006-01-02T15:04:05.000"); got != "2025-06-15T23:59:59.000" {
		t.Fatalf("end mismatch: %s", got)
	}
}

func TestDateRangeUsesClockLocation(t *testing.T) {
	loc := time.FixedZone("CST", -6*60*60)
	now := time.Date(2025, time.March, 3, 1, 30, 0, 0, loc)
	d := newDateRangeTranslator(helpers.FixedClock(now))

	want := rangeFilter(
		time.Date(2025, time.March, 3, 0, 0, 0, 0, loc),
		time.Date(2025, time.March, 3, 23, 59, 59, 0, loc))
	if got := d.Translate("today"); got != want {
		t.Fatalf("Translate(today) = %q, want %q", got, want)
	}
}
