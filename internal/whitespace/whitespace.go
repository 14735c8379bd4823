// Package whitespace computes the free time of a day that is both outside any
// busy calendar event and inside a desired availability window.
package whitespace

import "triage/internal/interval"

// Resolve returns the whitespace of day: the parts of each desired interval
// that do not overlap a busy interval.
// Results follow desired order, then free-slot order; they are not merged.
func Resolve(day interval.Interval, busy, desired []interval.Interval) []interval.Interval {
	free := day.Subtract(busy)

	var result []interval.Interval
	for _, d := range desired {
		for _, f := range free {
			if overlap, ok := interval.Intersect(d, f); ok {
				result = append(result, overlap)
			}
		}
	}
	return result
}
