package services

import (
	"fmt"
	"strings"
	"time"
)

const customRangeSeparator = "_to_"

// dateRangeTranslator turns the date_range tokens the model is allowed to use
// into an index filter on the scrape timestamp (created, epoch milliseconds).
type dateRangeTranslator struct {
	clockNow func() time.Time
}

func newDateRangeTranslator(clockNow func() time.Time) *dateRangeTranslator {
	if clockNow == nil {
		clockNow = time.Now
	}
	return &dateRangeTranslator{clockNow: clockNow}
}

// Translate returns "" for empty, unknown or unparseable expressions; that
// means no date filter rather than an error.
func (d *dateRangeTranslator) Translate(expr string) string {
	start, end, ok := d.bounds(expr)
	if !ok {
		return ""
	}
	return fmt.Sprintf("created>=%d AND created<=%d", start.UnixMilli(), end.UnixMilli())
}

func (d *dateRangeTranslator) bounds(expr string) (time.Time, time.Time, bool) {
	token := strings.ToLower(strings.TrimSpace(expr))
	if token == "" {
		return time.Time{}, time.Time{}, false
	}

	now := d.clockNow()
	switch token {
	case "today":
		return startOfDay(now), endOfDay(now), true
	case "yesterday":
		y := now.AddDate(0, 0, -1)
		return startOfDay(y), endOfDay(y), true
	case "past_week", "past_7_days":
		return now.AddDate(0, 0, -7), now, true
	case "past_month", "past_30_days":
		return now.AddDate(0, 0, -30), now, true
	case "past_3_months", "past_90_days":
		return now.AddDate(0, 0, -90), now, true
	}

	from, to, found := strings.Cut(token, customRangeSeparator)
	if !found {
		return time.Time{}, time.Time{}, false
	}
	startDay, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(from), now.Location())
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	endDay, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(to), now.Location())
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return startDay, endOfDay(endDay).Add(999 * time.Millisecond), true
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// endOfDay is second-aligned; custom ranges carry the extra 999ms instead.
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
