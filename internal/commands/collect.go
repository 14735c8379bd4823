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
	"triage/internal/tags"
)

func init() {
	Register(&CollectCmd{})
}

// CollectCmd moves due all-day events back into the inbox. Each collected
// event is kept on the calendar with a #done prefix.
type CollectCmd struct {
	clock
}

func (c *CollectCmd) Name() string      { return "collect" }
func (c *CollectCmd) Aliases() []string { return []string{"ci"} }
func (c *CollectCmd) Synopsis() string  { return "Move due day events from the calendar to the inbox" }
func (c *CollectCmd) Usage() string     { return "triage collect" }
func (c *CollectCmd) NeedsAuth() bool   { return true }

func (c *CollectCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *CollectCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	settings := cfg.Settings
	today := availability.ReferenceDay(c.now(), settings.Location, settings.DayEndHour)
	since := today.AddDays(-settings.LookbackDays)

	inbox, code := selectList(ctx, cfg, svc, false, errOut)
	if code != exitcode.Success {
		return code
	}

	events, err := svc.ListDayEvents(ctx, since, today.AddDays(1))
	if err != nil {
		return backendFailure(errOut, err)
	}

	collected := 0
	for _, ev := range events {
		if tags.IsDone(ev.Title) {
			continue
		}
		if err := svc.CreateTask(ctx, inbox.ID, ev.Title); err != nil {
			fmt.Fprintf(out, "%d moved from calendar to inbox\n", collected)
			return backendFailure(errOut, err)
		}
		if err := svc.RenameEvent(ctx, ev.ID, tags.MarkDone(ev.Title)); err != nil {
			fmt.Fprintf(out, "%d moved from calendar to inbox\n", collected)
			return backendFailure(errOut, err)
		}
		collected++
		cfg.Log.Debug().Str("event", ev.ID).Stringer("date", ev.Date).Msg("event collected")
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "%d moved from calendar to inbox\n", collected)
	}
	return exitcode.Success
}
