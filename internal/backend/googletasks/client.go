// Package googletasks implements service.TaskService using the Google Tasks API.
package googletasks

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"triage/internal/backend/apierr"
	"triage/internal/service"
)

const (
	// DefaultListID is the special ID for the default list.
	DefaultListID = "@default"

	// PageSize is the number of tasks per page.
	PageSize = 100

	// APITimeout is the timeout for API calls.
	APITimeout = 5 * time.Second

	// Scope is the OAuth scope for Google Tasks.
	Scope = tasks.TasksScope
)

// Client implements service.TaskService using Google Tasks API.
type Client struct {
	svc *tasks.Service
	log zerolog.Logger
}

// New creates a Google Tasks client. opts usually carry an authorized HTTP
// client.
func New(ctx context.Context, log zerolog.Logger, opts ...option.ClientOption) (*Client, error) {
	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}
	return &Client{svc: svc, log: log.With().Str("backend", "tasks").Logger()}, nil
}

// DefaultList returns the user's default task list.
func (c *Client) DefaultList(ctx context.Context) (service.TaskList, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	list, err := c.svc.Tasklists.Get(DefaultListID).Context(ctx).Do()
	if err != nil {
		return service.TaskList{}, apierr.Wrap(err)
	}

	return service.TaskList{
		ID:        DefaultListID,
		Title:     list.Title,
		IsDefault: true,
	}, nil
}

// ListLists returns all task lists in API order.
func (c *Client) ListLists(ctx context.Context) ([]service.TaskList, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	// The default list's real ID is needed to flag it in the listing
	defaultList, err := c.svc.Tasklists.Get(DefaultListID).Context(ctx).Do()
	if err != nil {
		return nil, apierr.Wrap(err)
	}
	defaultRealID := defaultList.Id

	var result []service.TaskList
	err = c.svc.Tasklists.List().MaxResults(100).Pages(ctx, func(resp *tasks.TaskLists) error {
		for _, list := range resp.Items {
			isDefault := list.Id == defaultRealID
			id := list.Id
			if isDefault {
				id = DefaultListID
			}
			result = append(result, service.TaskList{
				ID:        id,
				Title:     list.Title,
				IsDefault: isDefault,
			})
		}
		return nil
	})
	if err != nil {
		return nil, apierr.Wrap(err)
	}

	return result, nil
}

// ResolveList finds a list by name (case-insensitive, trimmed).
func (c *Client) ResolveList(ctx context.Context, name string) (service.TaskList, error) {
	lists, err := c.ListLists(ctx)
	if err != nil {
		return service.TaskList{}, err
	}
	return service.MatchList(lists, name)
}

// ListOpenTasks returns one page of open tasks for a list.
func (c *Client) ListOpenTasks(ctx context.Context, listID string, page int) ([]service.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	call := c.openTasksCall(ctx, listID)

	// The API pages by token, so walk forward to the requested page
	var pageToken string
	for current := 1; current < page; current++ {
		resp, err := call.PageToken(pageToken).Do()
		if err != nil {
			return nil, apierr.Wrap(err)
		}
		if resp.NextPageToken == "" {
			return nil, nil
		}
		pageToken = resp.NextPageToken
	}

	resp, err := call.PageToken(pageToken).Do()
	if err != nil {
		return nil, apierr.Wrap(err)
	}
	return convertTasks(resp.Items), nil
}

// AllOpenTasks returns every open task of a list in API order.
func (c *Client) AllOpenTasks(ctx context.Context, listID string) ([]service.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var result []service.Task
	err := c.openTasksCall(ctx, listID).Pages(ctx, func(resp *tasks.Tasks) error {
		result = append(result, convertTasks(resp.Items)...)
		return nil
	})
	if err != nil {
		return nil, apierr.Wrap(err)
	}
	c.log.Debug().Str("list", listID).Int("count", len(result)).Msg("fetched open tasks")
	return result, nil
}

func (c *Client) openTasksCall(ctx context.Context, listID string) *tasks.TasksListCall {
	return c.svc.Tasks.List(listID).
		MaxResults(PageSize).
		ShowCompleted(false).
		ShowDeleted(false).
		ShowHidden(false).
		Context(ctx)
}

func convertTasks(items []*tasks.Task) []service.Task {
	result := make([]service.Task, 0, len(items))
	for _, task := range items {
		result = append(result, service.Task{
			ID:       task.Id,
			Title:    task.Title,
			Position: task.Position,
			Status:   task.Status,
		})
	}
	return result
}

// CreateTask creates a new task in the specified list.
func (c *Client) CreateTask(ctx context.Context, listID, title string) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	_, err := c.svc.Tasks.Insert(listID, &tasks.Task{Title: title}).Context(ctx).Do()
	if err != nil {
		return apierr.Wrap(err)
	}
	return nil
}

// UpdateTaskTitle replaces the title of a task.
func (c *Client) UpdateTaskTitle(ctx context.Context, listID, taskID, title string) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	_, err := c.svc.Tasks.Patch(listID, taskID, &tasks.Task{Title: title}).Context(ctx).Do()
	if err != nil {
		return apierr.Wrap(err)
	}
	return nil
}

// CompleteTask marks a task as completed.
func (c *Client) CompleteTask(ctx context.Context, listID, taskID string) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	_, err := c.svc.Tasks.Patch(listID, taskID, &tasks.Task{
		Status: "completed",
	}).Context(ctx).Do()
	if err != nil {
		return apierr.Wrap(err)
	}
	return nil
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, listID, taskID string) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	err := c.svc.Tasks.Delete(listID, taskID).Context(ctx).Do()
	if err != nil {
		return apierr.Wrap(err)
	}
	return nil
}
