// utils/dates.go
package utils

import (
	"fmt"
	"time"
)

// DefaultRange is substituted for any unrecognized range selector.
const DefaultRange = "7d"

// lifetimeFloor anchors the "life" range; nothing in the system predates it.
var lifetimeFloor = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// NormalizeRange maps unknown selectors to DefaultRange.
func NormalizeRange(r string) string {
	switch r {
	case "1d", "7d", "1m", "3m", "6m", "1y", "life":
		return r
	default:
		return DefaultRange
	}
}

// RangeWindowStart returns the start of the lookback window for a range
// selector, anchored at now.
func RangeWindowStart(r string, now time.Time) time.Time {
	switch NormalizeRange(r) {
	case "1d":
		return now.AddDate(0, 0, -1)
	case "7d":
		return now.AddDate(0, 0, -7)
	case "1m":
		return now.AddDate(0, -1, 0)
	case "3m":
		return now.AddDate(0, -3, 0)
	case "6m":
		return now.AddDate(0, -6, 0)
	case "1y":
		return now.AddDate(-1, 0, 0)
	default: // life
		return lifetimeFloor
	}
}

// BucketKey returns the revenue-trend grouping key for a timestamp: calendar
// day for short ranges, week-of-year for the month ranges, month for a year,
// year for lifetime. Keys sort lexicographically in chronological order.
func BucketKey(r string, t time.Time) string {
	switch NormalizeRange(r) {
	case "1d", "7d":
		return t.Format("2006-01-02")
	case "1m", "3m", "6m":
		return fmt.Sprintf("%d-%02d", t.Year(), sundayWeek(t))
	case "1y":
		return t.Format("2006-01")
	default: // life
		return t.Format("2006")
	}
}

// sundayWeek is the week number within the year with Sunday as the first day,
// 0 to 53; days before the year's first Sunday fall in week 0.
func sundayWeek(t time.Time) int {
	yday := t.YearDay() - 1
	wday := int(t.Weekday())
	return (yday + 7 - wday) / 7
}

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
