// Package availability turns per-weekday clock-time windows into the absolute
// intervals of a day that are still available for scheduling.
package availability

import (
	"time"

	"triage/internal/interval"
)

// Calculator computes desired intervals from a weekly availability table.
// It holds an immutable copy of the table.
type Calculator struct {
	week Week
	loc  *time.Location
}

// NewCalculator creates a calculator for the given week, interpreted in loc.
func NewCalculator(week Week, loc *time.Location) *Calculator {
	if loc == nil {
		loc = time.UTC
	}
	return &Calculator{week: week.Clone(), loc: loc}
}

// Location returns the timezone the windows are interpreted in.
func (c *Calculator) Location() *time.Location { return c.loc }

// Desired returns the day's availability windows as UTC intervals, clipped to
// [now, upper]. Windows entirely in the past are dropped. The result is in
// configuration order and is not simplified.
func (c *Calculator) Desired(day Date, now, upper time.Time) []interval.Interval {
	remaining, err := interval.New(now.UTC(), upper.UTC())
	if err != nil {
		// The whole day is already over.
		return nil
	}

	var result []interval.Interval
	for _, w := range c.week[day.Weekday()] {
		start := day.At(w.Start, c.loc).UTC()
		end := day.At(w.End, c.loc).UTC()
		window, err := interval.New(start, end)
		if err != nil {
			// A DST transition can fold a short window onto itself.
			continue
		}
		if actionable, ok := interval.Intersect(remaining, window); ok {
			result = append(result, actionable)
		}
	}
	return result
}
