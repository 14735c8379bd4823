package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"triage/internal/availability"
	"triage/internal/config"
	"triage/internal/exitcode"
	"triage/internal/interval"
	"triage/internal/output"
	"triage/internal/scheduler"
	"triage/internal/service"
	"triage/internal/tags"
	"triage/internal/whitespace"
)

func init() {
	Register(&PlanCmd{})
}

// PlanCmd schedules inbox tasks into today's free time.
type PlanCmd struct {
	clock
	dryRun bool
}

func (c *PlanCmd) Name() string      { return "plan" }
func (c *PlanCmd) Aliases() []string { return []string{"ic"} }
func (c *PlanCmd) Synopsis() string  { return "Schedule inbox tasks into today's free time" }
func (c *PlanCmd) Usage() string     { return "triage plan [--dry-run]" }
func (c *PlanCmd) NeedsAuth() bool   { return true }

func (c *PlanCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.dryRun, "dry-run", false, "")
	fs.BoolVar(&c.dryRun, "n", false, "")
}

func (c *PlanCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	settings := cfg.Settings
	log := cfg.Log.With().Str("run", uuid.NewString()).Logger()

	now := c.now()
	today := availability.ReferenceDay(now, settings.Location, settings.DayEndHour)
	lower := today.Midnight(settings.Location)
	upper := today.AddDays(1).Midnight(settings.Location)
	day, err := interval.New(lower.UTC(), upper.UTC())
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	inbox, code := selectList(ctx, cfg, svc, false, errOut)
	if code != exitcode.Success {
		return code
	}
	open, err := svc.AllOpenTasks(ctx, inbox.ID)
	if err != nil {
		return backendFailure(errOut, err)
	}

	busy, err := svc.BusyIntervals(ctx, lower, upper)
	if err != nil {
		return backendFailure(errOut, err)
	}

	desired := availability.NewCalculator(settings.Week, settings.Location).Desired(today, now, upper)
	free := whitespace.Resolve(day, busy, desired)
	log.Debug().
		Stringer("day", today).
		Int("busy", len(busy)).
		Int("desired", len(desired)).
		Int("whitespace", len(free)).
		Int("tasks", len(open)).
		Msg("planning")

	tasks := make([]scheduler.Task, 0, len(open))
	for _, t := range open {
		tasks = append(tasks, scheduler.Task{
			ID:      t.ID,
			Title:   t.Title,
			Minutes: tags.Minutes(t.Title, settings.DefaultTaskMinutes),
		})
	}

	var placer scheduler.Placer = svc
	if c.dryRun {
		placer = dryRunPlacer{}
	}
	placements, err := scheduler.New(placer, log).Schedule(ctx, tasks, free)
	for _, p := range placements {
		output.FormatPlacement(out, p, settings.Location)
	}
	if errors.Is(err, scheduler.ErrInvalidDuration) {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if err != nil {
		return backendFailure(errOut, err)
	}

	if !cfg.Quiet {
		if c.dryRun {
			fmt.Fprintf(out, "%d tasks would be scheduled in calendar\n", len(placements))
		} else {
			fmt.Fprintf(out, "%d tasks scheduled in calendar\n", len(placements))
		}
	}
	return exitcode.Success
}

// dryRunPlacer accepts every placement without touching the calendar.
type dryRunPlacer struct{}

func (dryRunPlacer) CreateEvent(ctx context.Context, title string, start, end time.Time) error {
	return nil
}
