// Package service defines the backend-agnostic interfaces for task and
// calendar operations.
package service

import (
	"context"
	"time"

	"triage/internal/availability"
	"triage/internal/interval"
)

// TaskService covers task list operations.
type TaskService interface {
	// DefaultList returns the user's default task list.
	DefaultList(ctx context.Context) (TaskList, error)

	// ListLists returns all task lists in API order.
	ListLists(ctx context.Context) ([]TaskList, error)

	// ResolveList finds a list by name (case-insensitive, trimmed).
	// Returns error if not found or ambiguous.
	ResolveList(ctx context.Context, name string) (TaskList, error)

	// ListOpenTasks returns open tasks for a list.
	// page is 1-based; page size is 100.
	// Returns empty slice if page is out of range.
	// Results are in API order (no client-side sorting).
	ListOpenTasks(ctx context.Context, listID string, page int) ([]Task, error)

	// AllOpenTasks returns every open task of a list in API order.
	AllOpenTasks(ctx context.Context, listID string) ([]Task, error)

	// CreateTask creates a new task in the specified list.
	CreateTask(ctx context.Context, listID, title string) error

	// UpdateTaskTitle replaces the title of a task.
	UpdateTaskTitle(ctx context.Context, listID, taskID, title string) error

	// CompleteTask marks a task as completed.
	CompleteTask(ctx context.Context, listID, taskID string) error

	// DeleteTask deletes a task.
	DeleteTask(ctx context.Context, listID, taskID string) error
}

// CalendarService covers calendar operations on the configured calendar.
type CalendarService interface {
	// BusyIntervals returns the timed events overlapping [start, end) as UTC
	// intervals. All-day and zero-length events are skipped.
	BusyIntervals(ctx context.Context, start, end time.Time) ([]interval.Interval, error)

	// CreateEvent creates a timed event.
	CreateEvent(ctx context.Context, title string, start, end time.Time) error

	// CreateAllDayEvent creates an all-day event on date.
	CreateAllDayEvent(ctx context.Context, title string, date availability.Date) error

	// ListDayEvents returns the all-day events starting on a date in
	// [since, until).
	ListDayEvents(ctx context.Context, since, until availability.Date) ([]Event, error)

	// RenameEvent replaces the title of an event.
	RenameEvent(ctx context.Context, eventID, title string) error
}

// Service is the full backend used by commands.
// Commands never import Google SDKs directly.
type Service interface {
	TaskService
	CalendarService
}
