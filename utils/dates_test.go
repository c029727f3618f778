package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRange(t *testing.T) {
	for _, r := range []string{"1d", "7d", "1m", "3m", "6m", "1y", "life"} {
		assert.Equal(t, r, NormalizeRange(r))
	}
	assert.Equal(t, "7d", NormalizeRange(""))
	assert.Equal(t, "7d", NormalizeRange("2w"))
	assert.Equal(t, "7d", NormalizeRange("bogus"))
}

func TestRangeWindowStart(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, now.AddDate(0, 0, -1), RangeWindowStart("1d", now))
	assert.Equal(t, now.AddDate(0, 0, -7), RangeWindowStart("7d", now))
	assert.Equal(t, now.AddDate(0, -1, 0), RangeWindowStart("1m", now))
	assert.Equal(t, now.AddDate(0, -3, 0), RangeWindowStart("3m", now))
	assert.Equal(t, now.AddDate(0, -6, 0), RangeWindowStart("6m", now))
	assert.Equal(t, now.AddDate(-1, 0, 0), RangeWindowStart("1y", now))
	assert.Equal(t, time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), RangeWindowStart("life", now))

	// Unknown selectors fall back to the 7d window
	assert.Equal(t, RangeWindowStart("7d", now), RangeWindowStart("nonsense", now))
}

func TestBucketKey(t *testing.T) {
	ts := time.Date(2024, 3, 9, 18, 30, 0, 0, time.UTC)

	assert.Equal(t, "2024-03-09", BucketKey("1d", ts))
	assert.Equal(t, "2024-03-09", BucketKey("7d", ts))
	assert.Equal(t, "2024-03", BucketKey("1y", ts))
	assert.Equal(t, "2024", BucketKey("life", ts))

	// Unknown range buckets like the 7d default
	assert.Equal(t, BucketKey("7d", ts), BucketKey("whatever", ts))
}

func TestBucketKeyWeekNumbers(t *testing.T) {
	// Jan 1 2024 is a Monday: it precedes the year's first Sunday, so week 00.
	assert.Equal(t, "2024-00", BucketKey("1m", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	// Jan 7 2024 is the first Sunday: week 01 starts.
	assert.Equal(t, "2024-01", BucketKey("3m", time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-01", BucketKey("6m", time.Date(2024, 1, 13, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-02", BucketKey("1m", time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC)))
	// Jan 1 2023 is itself a Sunday, so it opens week 01.
	assert.Equal(t, "2023-01", BucketKey("1m", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestBucketKeysSortChronologically(t *testing.T) {
	// Zero-padded week keys keep lexicographic order chronological.
	early := BucketKey("1m", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	late := BucketKey("1m", time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC))
	assert.Less(t, early, late)
}

func TestBeginningOfDay(t *testing.T) {
	ts := time.Date(2024, 6, 15, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), BeginningOfDay(ts))
}
