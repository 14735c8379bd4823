package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"triage/internal/config"
	"triage/internal/exitcode"
	"triage/internal/output"
	"triage/internal/service"
	"triage/internal/tags"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `triage` (no args) and `triage list`.
type ListCmd struct {
	page    int
	waiting bool
}

// SetPage sets the page number (for testing).
func (c *ListCmd) SetPage(page int) {
	c.page = page
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List inbox tasks" }
func (c *ListCmd) Usage() string     { return "triage list [--waiting] [--page <n>]" }
func (c *ListCmd) NeedsAuth() bool   { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.page, "page", 1, "")
	fs.BoolVar(&c.waiting, "waiting", false, "")
	fs.BoolVar(&c.waiting, "w", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if c.page < 1 {
		fmt.Fprintf(errOut, "error: invalid page number: %d\n", c.page)
		return exitcode.UserError
	}
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	list, code := selectList(ctx, cfg, svc, c.waiting, errOut)
	if code != exitcode.Success {
		return code
	}

	tasks, err := svc.ListOpenTasks(ctx, list.ID, c.page)
	if err != nil {
		return backendFailure(errOut, err)
	}

	if len(tasks) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	output.FormatListHeader(out, list.Title, list.IsDefault)

	startNum := (c.page-1)*100 + 1
	for i, task := range tasks {
		output.FormatTask(out, startNum+i, task, tags.Minutes(task.Title, cfg.Settings.DefaultTaskMinutes))
	}

	return exitcode.Success
}
