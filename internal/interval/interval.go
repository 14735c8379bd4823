// Package interval implements the time-interval algebra used to find free time
// in a calendar day: intersection, union, simplification and subtraction of
// absolute time spans.
package interval

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrInvalidInterval is returned when an interval's start is not strictly
// before its end.
var ErrInvalidInterval = errors.New("invalid interval")

// sentinelWidth is the width of the padding intervals Subtract places just
// outside the boundaries of the interval being subtracted from.
const sentinelWidth = time.Second

// displayFormat is used by String.
const displayFormat = "20060102T1504"

// Interval is an immutable span of time with start < end.
// The zero value is not a valid interval; use New.
type Interval struct {
	start time.Time
	end   time.Time
}

// New creates an interval from start to end.
// Returns ErrInvalidInterval if start is not strictly before end.
func New(start, end time.Time) (Interval, error) {
	if !start.Before(end) {
		return Interval{}, fmt.Errorf("%w: start %s must be before end %s",
			ErrInvalidInterval, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return Interval{start: start, end: end}, nil
}

// MustNew is like New but panics on an invalid interval.
// Intended for literals in tests and package-level tables.
func MustNew(start, end time.Time) Interval {
	iv, err := New(start, end)
	if err != nil {
		panic(err)
	}
	return iv
}

// Start returns the start instant.
func (iv Interval) Start() time.Time { return iv.start }

// End returns the end instant.
func (iv Interval) End() time.Time { return iv.end }

// Duration returns end - start.
func (iv Interval) Duration() time.Duration { return iv.end.Sub(iv.start) }

// Minutes returns the length of the interval in (fractional) minutes.
func (iv Interval) Minutes() float64 { return iv.Duration().Minutes() }

// Equal reports whether both intervals have the same start and end instants.
func (iv Interval) Equal(other Interval) bool {
	return iv.start.Equal(other.start) && iv.end.Equal(other.end)
}

// Less orders intervals by start.
func (iv Interval) Less(other Interval) bool {
	return iv.start.Before(other.start)
}

// Compare orders intervals by start, returning -1, 0 or +1.
// Intervals with equal starts compare as 0 regardless of their ends.
func Compare(a, b Interval) int {
	return a.start.Compare(b.start)
}

// String formats the interval as "YYYYMMDDTHHMM-YYYYMMDDTHHMM".
func (iv Interval) String() string {
	return iv.start.Format(displayFormat) + "-" + iv.end.Format(displayFormat)
}

// Intersect returns the overlap of a and b.
// The second return value is false when they do not overlap; intervals that
// only share an endpoint do not overlap.
func Intersect(a, b Interval) (Interval, bool) {
	start := later(a.start, b.start)
	end := earlier(a.end, b.end)
	if !start.Before(end) {
		return Interval{}, false
	}
	return Interval{start: start, end: end}, true
}

// Intersect is the method form of Intersect.
func (iv Interval) Intersect(other Interval) (Interval, bool) {
	return Intersect(iv, other)
}

// Union returns a single merged interval when a and b overlap or touch,
// otherwise both inputs unchanged as [a, b].
func Union(a, b Interval) []Interval {
	_, overlap := Intersect(a, b)
	if !overlap && !a.end.Equal(b.start) && !b.end.Equal(a.start) {
		return []Interval{a, b}
	}
	return []Interval{{
		start: earlier(a.start, b.start),
		end:   later(a.end, b.end),
	}}
}

// Simplify merges overlapping and touching intervals.
// The result is sorted by start and no two of its intervals intersect.
// The input slice is not modified.
func Simplify(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return []Interval{}
	}

	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Less(sorted[j])
	})

	candidate := sorted[0]
	result := make([]Interval, 0, len(sorted))
	for _, next := range sorted[1:] {
		merged := Union(candidate, next)
		if len(merged) == 1 {
			candidate = merged[0]
			continue
		}
		result = append(result, candidate)
		candidate = next
	}
	return append(result, candidate)
}

// Subtract returns the parts of iv not covered by any of intervals, sorted by
// start. Intervals lying outside iv have no effect.
func (iv Interval) Subtract(intervals []Interval) []Interval {
	padded := make([]Interval, 0, len(intervals)+2)
	padded = append(padded, Interval{start: iv.start.Add(-sentinelWidth), end: iv.start})
	padded = append(padded, intervals...)
	padded = append(padded, Interval{start: iv.end, end: iv.end.Add(sentinelWidth)})

	merged := Simplify(padded)

	free := make([]Interval, 0, len(merged))
	for i := 1; i < len(merged); i++ {
		// Simplify never leaves touching neighbours, so the gap is non-empty.
		gap := Interval{start: merged[i-1].end, end: merged[i].start}
		if part, ok := Intersect(iv, gap); ok {
			free = append(free, part)
		}
	}
	return free
}

func earlier(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}
	return a
}

func later(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}
