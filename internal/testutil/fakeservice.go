// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"triage/internal/availability"
	"triage/internal/interval"
	"triage/internal/service"
)

// DefaultListID is the ID used for the default list.
const DefaultListID = "@default"

// TimedEvent is a timed event created through the fake.
type TimedEvent struct {
	ID    string
	Title string
	Start time.Time
	End   time.Time
}

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu    sync.RWMutex
	lists []service.TaskList
	tasks map[string][]service.Task // listID -> tasks

	busy      []interval.Interval
	timed     []TimedEvent
	dayEvents []service.Event

	// Error injection for testing
	DefaultListErr     error
	ListListsErr       error
	ResolveListErr     error
	ListOpenTasksErr   map[string]error // listID -> error
	CreateTaskErr      error
	UpdateTaskTitleErr error
	CompleteTaskErr    error
	DeleteTaskErr      error
	BusyIntervalsErr   error
	CreateEventErr     error
	CreateAllDayErr    error
	ListDayEventsErr   error
	RenameEventErr     error

	// CreateEventFailAt makes the n-th CreateEvent call (1-based) fail with
	// CreateEventErr. Zero fails every call when CreateEventErr is set.
	CreateEventFailAt int
	createEventCalls  int
}

// NewFakeService creates a new FakeService with a default list.
func NewFakeService() *FakeService {
	fs := &FakeService{
		tasks:            make(map[string][]service.Task),
		ListOpenTasksErr: make(map[string]error),
	}
	fs.lists = []service.TaskList{
		{ID: DefaultListID, Title: "My Tasks", IsDefault: true},
	}
	fs.tasks[DefaultListID] = nil
	return fs
}

// AddList adds a list to the fake service.
func (f *FakeService) AddList(id, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, service.TaskList{ID: id, Title: title, IsDefault: false})
	if f.tasks[id] == nil {
		f.tasks[id] = nil
	}
}

// AddTask adds an open task to a list.
func (f *FakeService) AddTask(listID, taskID, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks[listID] = append(f.tasks[listID], service.Task{
		ID:     taskID,
		Title:  title,
		Status: "needsAction",
	})
}

// Tasks returns a copy of every task in a list, completed ones included.
func (f *FakeService) Tasks(listID string) []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]service.Task(nil), f.tasks[listID]...)
}

// AddBusy adds a timed calendar event that only blocks time.
func (f *FakeService) AddBusy(iv interval.Interval) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.busy = append(f.busy, iv)
}

// AddDayEvent adds an all-day event.
func (f *FakeService) AddDayEvent(id, title string, date availability.Date) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dayEvents = append(f.dayEvents, service.Event{ID: id, Title: title, Date: date})
}

// TimedEvents returns the timed events created through CreateEvent.
func (f *FakeService) TimedEvents() []TimedEvent {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]TimedEvent(nil), f.timed...)
}

// DayEvents returns every all-day event, sorted by date.
func (f *FakeService) DayEvents() []service.Event {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := append([]service.Event(nil), f.dayEvents...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// DefaultList implements service.Service.
func (f *FakeService) DefaultList(ctx context.Context) (service.TaskList, error) {
	if f.DefaultListErr != nil {
		return service.TaskList{}, f.DefaultListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, l := range f.lists {
		if l.IsDefault {
			return l, nil
		}
	}
	return service.TaskList{}, errors.New("no default list")
}

// ListLists implements service.Service.
func (f *FakeService) ListLists(ctx context.Context) ([]service.TaskList, error) {
	if f.ListListsErr != nil {
		return nil, f.ListListsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.TaskList, len(f.lists))
	copy(result, f.lists)
	return result, nil
}

// ResolveList implements service.Service.
func (f *FakeService) ResolveList(ctx context.Context, name string) (service.TaskList, error) {
	if f.ResolveListErr != nil {
		return service.TaskList{}, f.ResolveListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return service.MatchList(f.lists, name)
}

func (f *FakeService) openTasks(listID string) ([]service.Task, error) {
	tasks, ok := f.tasks[listID]
	if !ok {
		return nil, service.ErrNotFound
	}
	var open []service.Task
	for _, t := range tasks {
		if t.Status == "needsAction" {
			open = append(open, t)
		}
	}
	return open, nil
}

// ListOpenTasks implements service.Service.
func (f *FakeService) ListOpenTasks(ctx context.Context, listID string, page int) ([]service.Task, error) {
	if err, ok := f.ListOpenTasksErr[listID]; ok && err != nil {
		return nil, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	open, err := f.openTasks(listID)
	if err != nil {
		return nil, err
	}

	const pageSize = 100
	start := (page - 1) * pageSize
	if start >= len(open) {
		return nil, nil
	}
	end := start + pageSize
	if end > len(open) {
		end = len(open)
	}
	return open[start:end], nil
}

// AllOpenTasks implements service.Service.
func (f *FakeService) AllOpenTasks(ctx context.Context, listID string) ([]service.Task, error) {
	if err, ok := f.ListOpenTasksErr[listID]; ok && err != nil {
		return nil, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.openTasks(listID)
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, listID, title string) error {
	if f.CreateTaskErr != nil {
		return f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.tasks[listID]; !ok {
		return service.ErrNotFound
	}
	f.tasks[listID] = append(f.tasks[listID], service.Task{
		ID:     uuid.NewString(),
		Title:  title,
		Status: "needsAction",
	})
	return nil
}

func (f *FakeService) findTask(listID, taskID string) (*service.Task, error) {
	tasks, ok := f.tasks[listID]
	if !ok {
		return nil, service.ErrNotFound
	}
	for i := range tasks {
		if tasks[i].ID == taskID {
			return &tasks[i], nil
		}
	}
	return nil, service.ErrNotFound
}

// UpdateTaskTitle implements service.Service.
func (f *FakeService) UpdateTaskTitle(ctx context.Context, listID, taskID, title string) error {
	if f.UpdateTaskTitleErr != nil {
		return f.UpdateTaskTitleErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	task, err := f.findTask(listID, taskID)
	if err != nil {
		return err
	}
	task.Title = title
	return nil
}

// CompleteTask implements service.Service.
func (f *FakeService) CompleteTask(ctx context.Context, listID, taskID string) error {
	if f.CompleteTaskErr != nil {
		return f.CompleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	task, err := f.findTask(listID, taskID)
	if err != nil {
		return err
	}
	task.Status = "completed"
	return nil
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, listID, taskID string) error {
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	tasks, ok := f.tasks[listID]
	if !ok {
		return service.ErrNotFound
	}
	for i, t := range tasks {
		if t.ID == taskID {
			f.tasks[listID] = append(tasks[:i], tasks[i+1:]...)
			return nil
		}
	}
	return service.ErrNotFound
}

// BusyIntervals implements service.Service. Added busy time and events
// created through CreateEvent both count.
func (f *FakeService) BusyIntervals(ctx context.Context, start, end time.Time) ([]interval.Interval, error) {
	if f.BusyIntervalsErr != nil {
		return nil, f.BusyIntervalsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	window, err := interval.New(start, end)
	if err != nil {
		return nil, err
	}
	all := append([]interval.Interval(nil), f.busy...)
	for _, ev := range f.timed {
		all = append(all, interval.MustNew(ev.Start, ev.End))
	}

	var result []interval.Interval
	for _, iv := range all {
		if _, ok := window.Intersect(iv); ok {
			result = append(result, iv)
		}
	}
	return result, nil
}

// CreateEvent implements service.Service.
func (f *FakeService) CreateEvent(ctx context.Context, title string, start, end time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.createEventCalls++
	if f.CreateEventErr != nil && (f.CreateEventFailAt == 0 || f.CreateEventFailAt == f.createEventCalls) {
		return f.CreateEventErr
	}
	f.timed = append(f.timed, TimedEvent{ID: uuid.NewString(), Title: title, Start: start, End: end})
	return nil
}

// CreateAllDayEvent implements service.Service.
func (f *FakeService) CreateAllDayEvent(ctx context.Context, title string, date availability.Date) error {
	if f.CreateAllDayErr != nil {
		return f.CreateAllDayErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dayEvents = append(f.dayEvents, service.Event{ID: uuid.NewString(), Title: title, Date: date})
	return nil
}

// ListDayEvents implements service.Service.
func (f *FakeService) ListDayEvents(ctx context.Context, since, until availability.Date) ([]service.Event, error) {
	if f.ListDayEventsErr != nil {
		return nil, f.ListDayEventsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	var result []service.Event
	for _, ev := range f.dayEvents {
		if ev.Date.Before(since) || !ev.Date.Before(until) {
			continue
		}
		result = append(result, ev)
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

// RenameEvent implements service.Service.
func (f *FakeService) RenameEvent(ctx context.Context, eventID, title string) error {
	if f.RenameEventErr != nil {
		return f.RenameEventErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.dayEvents {
		if f.dayEvents[i].ID == eventID {
			f.dayEvents[i].Title = title
			return nil
		}
	}
	return service.ErrNotFound
}

var _ service.Service = (*FakeService)(nil)
