// Package scheduler places inbox tasks into free calendar time.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"triage/internal/interval"
)

// ErrInvalidDuration is returned when a task has a non-positive duration.
var ErrInvalidDuration = errors.New("task duration must be positive")

// Task is a unit of work to be placed on the calendar.
type Task struct {
	ID      string
	Title   string
	Minutes int
}

// Duration returns the task length.
func (t Task) Duration() time.Duration {
	return time.Duration(t.Minutes) * time.Minute
}

// Placement is a task assigned to a time slot.
type Placement struct {
	Task  Task
	Start time.Time
	End   time.Time
}

// Placer submits placements to the calendar.
type Placer interface {
	CreateEvent(ctx context.Context, title string, start, end time.Time) error
}

// Scheduler greedily packs tasks into whitespace.
type Scheduler struct {
	placer Placer
	logger zerolog.Logger
}

// New creates a scheduler that submits every placement to placer.
func New(placer Placer, logger zerolog.Logger) *Scheduler {
	return &Scheduler{placer: placer, logger: logger}
}

// Schedule places tasks into whitespace and returns the placements in the
// order they were made.
//
// Tasks are sorted by duration, longest first, and then taken from the end of
// that order, so the shortest remaining task is placed first. This matches the
// placement order users of the tool have always seen; it is kept on purpose
// and open for reconsideration.
//
// A task goes into the first whitespace it is strictly shorter than; an exact
// fit is rejected. When a task fits nowhere the pass stops and no further task
// is attempted. A placer error also stops the pass and is returned unchanged
// together with the placements made before it.
func (s *Scheduler) Schedule(ctx context.Context, tasks []Task, whitespace []interval.Interval) ([]Placement, error) {
	for _, task := range tasks {
		if task.Minutes <= 0 {
			return nil, fmt.Errorf("%w: %q has %d minutes", ErrInvalidDuration, task.Title, task.Minutes)
		}
	}

	queue := make([]Task, len(tasks))
	copy(queue, tasks)
	sort.SliceStable(queue, func(i, j int) bool {
		return queue[i].Minutes > queue[j].Minutes
	})

	var placements []Placement
	for len(queue) > 0 {
		task := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		slot, ok := firstFit(task, whitespace)
		if !ok {
			s.logger.Debug().
				Str("task", task.Title).
				Int("minutes", task.Minutes).
				Int("remaining", len(queue)).
				Msg("no whitespace fits task, stopping")
			break
		}

		start := slot.Start()
		end := start.Add(task.Duration())
		if err := s.placer.CreateEvent(ctx, task.Title, start, end); err != nil {
			return placements, err
		}
		placements = append(placements, Placement{Task: task, Start: start, End: end})
		s.logger.Debug().
			Str("task", task.Title).
			Time("start", start).
			Time("end", end).
			Msg("task placed")

		whitespace = consume(whitespace, interval.MustNew(start, end))
	}
	return placements, nil
}

// firstFit returns the first whitespace interval the task is strictly
// shorter than.
func firstFit(task Task, whitespace []interval.Interval) (interval.Interval, bool) {
	minutes := float64(task.Minutes)
	for _, ws := range whitespace {
		if minutes >= ws.Minutes() {
			continue
		}
		return ws, true
	}
	return interval.Interval{}, false
}

// consume returns a new whitespace list with used removed.
func consume(whitespace []interval.Interval, used interval.Interval) []interval.Interval {
	var remaining []interval.Interval
	for _, ws := range whitespace {
		remaining = append(remaining, ws.Subtract([]interval.Interval{used})...)
	}
	return interval.Simplify(remaining)
}
