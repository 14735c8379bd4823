package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"triage/internal/availability"
	"triage/internal/config"
	"triage/internal/exitcode"
	"triage/internal/service"
)

func init() {
	Register(&DeferCmd{})
}

// DeferCmd moves a task onto the calendar as an all-day event on a later
// date and completes it.
type DeferCmd struct {
	clock
	waiting bool
	days    int
	weekday string
	weeks   int
}

func (c *DeferCmd) Name() string      { return "defer" }
func (c *DeferCmd) Aliases() []string { return []string{"c"} }
func (c *DeferCmd) Synopsis() string  { return "Move a task to a later day in the calendar" }
func (c *DeferCmd) Usage() string {
	return "triage defer [--waiting] (--days <n> | --weekday <mon..sun> [--weeks <n>]) <n>"
}
func (c *DeferCmd) NeedsAuth() bool { return true }

func (c *DeferCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.waiting, "waiting", false, "")
	fs.BoolVar(&c.waiting, "w", false, "")
	fs.IntVar(&c.days, "days", 0, "")
	fs.StringVar(&c.weekday, "weekday", "", "")
	fs.IntVar(&c.weeks, "weeks", 0, "")
}

func (c *DeferCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	num, ok := parseRefOrFail(args, errOut)
	if !ok {
		return exitcode.UserError
	}

	today := availability.ReferenceDay(c.now(), cfg.Settings.Location, cfg.Settings.DayEndHour)
	ahead, code := c.daysAhead(today, errOut)
	if code != exitcode.Success {
		return code
	}
	date := today.AddDays(ahead)

	list, code := selectList(ctx, cfg, svc, c.waiting, errOut)
	if code != exitcode.Success {
		return code
	}
	task, code := lookupTask(ctx, svc, list, num, errOut)
	if code != exitcode.Success {
		return code
	}

	if err := svc.CreateAllDayEvent(ctx, task.Title, date); err != nil {
		return backendFailure(errOut, err)
	}
	if err := svc.CompleteTask(ctx, list.ID, task.ID); err != nil {
		return backendFailure(errOut, err)
	}
	cfg.Log.Debug().Str("task", task.Title).Stringer("date", date).Msg("task deferred")

	if !cfg.Quiet {
		fmt.Fprintf(out, "deferred to %s\n", date)
	}
	return exitcode.Success
}

// daysAhead resolves the target from either --days or --weekday/--weeks.
func (c *DeferCmd) daysAhead(today availability.Date, errOut io.Writer) (int, int) {
	switch {
	case c.weekday != "" && c.days != 0:
		fmt.Fprintln(errOut, "error: cannot use both --days and --weekday")
		return 0, exitcode.UserError
	case c.weekday != "":
		wd, err := availability.ParseWeekday(c.weekday)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return 0, exitcode.UserError
		}
		if c.weeks < 0 {
			fmt.Fprintf(errOut, "error: invalid number of weeks: %d\n", c.weeks)
			return 0, exitcode.UserError
		}
		return availability.DaysUntil(today, wd, c.weeks), exitcode.Success
	case c.weeks != 0:
		fmt.Fprintln(errOut, "error: --weeks requires --weekday")
		return 0, exitcode.UserError
	case c.days < 0:
		fmt.Fprintf(errOut, "error: invalid number of days: %d\n", c.days)
		return 0, exitcode.UserError
	case c.days == 0:
		fmt.Fprintln(errOut, "error: --days or --weekday required")
		return 0, exitcode.UserError
	default:
		return c.days, exitcode.Success
	}
}
