package service

import (
	"triage/internal/availability"
)

// Task represents a single task item.
type Task struct {
	ID       string
	Title    string
	Position string
	Status   string // "needsAction" or "completed"
}

// TaskList represents a task list.
type TaskList struct {
	ID        string
	Title     string
	IsDefault bool
}

// Event is an all-day calendar event.
type Event struct {
	ID    string
	Title string
	Date  availability.Date
}
