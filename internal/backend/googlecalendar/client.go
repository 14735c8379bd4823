// Package googlecalendar implements service.CalendarService using the Google
// Calendar API.
package googlecalendar

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"triage/internal/availability"
	"triage/internal/backend/apierr"
	"triage/internal/interval"
	"triage/internal/service"
)

const (
	// APITimeout is the timeout for API calls.
	APITimeout = 5 * time.Second

	// Scope is the OAuth scope for reading and writing events.
	Scope = calendar.CalendarEventsScope

	pageSize = 250
)

// Client implements service.CalendarService for a single calendar.
type Client struct {
	svc        *calendar.Service
	calendarID string
	loc        *time.Location
	log        zerolog.Logger
}

// New creates a client for calendarID. Day boundaries are computed in loc.
func New(ctx context.Context, calendarID string, loc *time.Location, log zerolog.Logger, opts ...option.ClientOption) (*Client, error) {
	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Client{
		svc:        svc,
		calendarID: calendarID,
		loc:        loc,
		log:        log.With().Str("backend", "calendar").Logger(),
	}, nil
}

func (c *Client) listCall(ctx context.Context, start, end time.Time) *calendar.EventsListCall {
	return c.svc.Events.List(c.calendarID).
		TimeMin(start.Format(time.RFC3339)).
		TimeMax(end.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(pageSize).
		Context(ctx)
}

// BusyIntervals returns the timed events overlapping [start, end) as UTC
// intervals.
func (c *Client) BusyIntervals(ctx context.Context, start, end time.Time) ([]interval.Interval, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var busy []interval.Interval
	err := c.listCall(ctx, start, end).Pages(ctx, func(resp *calendar.Events) error {
		for _, ev := range resp.Items {
			iv, ok := c.timedInterval(ev)
			if ok {
				busy = append(busy, iv)
			}
		}
		return nil
	})
	if err != nil {
		return nil, apierr.Wrap(err)
	}
	c.log.Debug().Int("count", len(busy)).Time("from", start).Time("to", end).Msg("fetched busy intervals")
	return busy, nil
}

// timedInterval converts an event with a start and end time of day.
// All-day events, unparseable times and zero-length events are skipped.
func (c *Client) timedInterval(ev *calendar.Event) (interval.Interval, bool) {
	if ev.Start == nil || ev.End == nil || ev.Start.DateTime == "" || ev.End.DateTime == "" {
		return interval.Interval{}, false
	}
	start, err := time.Parse(time.RFC3339, ev.Start.DateTime)
	if err != nil {
		c.log.Warn().Str("event", ev.Id).Err(err).Msg("skipping event with unparseable start")
		return interval.Interval{}, false
	}
	end, err := time.Parse(time.RFC3339, ev.End.DateTime)
	if err != nil {
		c.log.Warn().Str("event", ev.Id).Err(err).Msg("skipping event with unparseable end")
		return interval.Interval{}, false
	}
	iv, err := interval.New(start.UTC(), end.UTC())
	if err != nil {
		c.log.Debug().Str("event", ev.Id).Msg("skipping zero-length event")
		return interval.Interval{}, false
	}
	return iv, true
}

// CreateEvent creates a timed event.
func (c *Client) CreateEvent(ctx context.Context, title string, start, end time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	ev := &calendar.Event{
		Summary: title,
		Start:   &calendar.EventDateTime{DateTime: start.Format(time.RFC3339)},
		End:     &calendar.EventDateTime{DateTime: end.Format(time.RFC3339)},
	}
	if _, err := c.svc.Events.Insert(c.calendarID, ev).Context(ctx).Do(); err != nil {
		return apierr.Wrap(err)
	}
	return nil
}

// CreateAllDayEvent creates an all-day event on date. The end date is
// exclusive, so it is the following day.
func (c *Client) CreateAllDayEvent(ctx context.Context, title string, date availability.Date) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	ev := &calendar.Event{
		Summary: title,
		Start:   &calendar.EventDateTime{Date: date.String()},
		End:     &calendar.EventDateTime{Date: date.AddDays(1).String()},
	}
	if _, err := c.svc.Events.Insert(c.calendarID, ev).Context(ctx).Do(); err != nil {
		return apierr.Wrap(err)
	}
	return nil
}

// ListDayEvents returns the all-day events starting on a date in
// [since, until).
func (c *Client) ListDayEvents(ctx context.Context, since, until availability.Date) ([]service.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var events []service.Event
	err := c.listCall(ctx, since.Midnight(c.loc), until.Midnight(c.loc)).Pages(ctx, func(resp *calendar.Events) error {
		for _, ev := range resp.Items {
			if ev.Start == nil || ev.Start.Date == "" {
				continue
			}
			date, err := availability.ParseDate(ev.Start.Date)
			if err != nil {
				c.log.Warn().Str("event", ev.Id).Err(err).Msg("skipping event with unparseable date")
				continue
			}
			if date.Before(since) || !date.Before(until) {
				continue
			}
			events = append(events, service.Event{ID: ev.Id, Title: ev.Summary, Date: date})
		}
		return nil
	})
	if err != nil {
		return nil, apierr.Wrap(err)
	}
	return events, nil
}

// RenameEvent replaces the title of an event.
func (c *Client) RenameEvent(ctx context.Context, eventID, title string) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	if _, err := c.svc.Events.Patch(c.calendarID, eventID, &calendar.Event{Summary: title}).Context(ctx).Do(); err != nil {
		return apierr.Wrap(err)
	}
	return nil
}
