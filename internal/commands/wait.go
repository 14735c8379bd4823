package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"triage/internal/config"
	"triage/internal/exitcode"
	"triage/internal/service"
)

func init() {
	Register(&WaitCmd{})
}

// WaitCmd moves an inbox task to the waiting list.
type WaitCmd struct{}

func (c *WaitCmd) Name() string      { return "wait" }
func (c *WaitCmd) Aliases() []string { return []string{"w"} }
func (c *WaitCmd) Synopsis() string  { return "Move an inbox task to the waiting list" }
func (c *WaitCmd) Usage() string     { return "triage wait <n>" }
func (c *WaitCmd) NeedsAuth() bool   { return true }

func (c *WaitCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *WaitCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	num, ok := parseRefOrFail(args, errOut)
	if !ok {
		return exitcode.UserError
	}

	inbox, code := selectList(ctx, cfg, svc, false, errOut)
	if code != exitcode.Success {
		return code
	}
	waiting, code := selectList(ctx, cfg, svc, true, errOut)
	if code != exitcode.Success {
		return code
	}
	if inbox.ID == waiting.ID {
		fmt.Fprintln(errOut, "error: inbox and waiting list are the same list")
		return exitcode.UserError
	}

	task, code := lookupTask(ctx, svc, inbox, num, errOut)
	if code != exitcode.Success {
		return code
	}

	// Create in waiting before deleting from the inbox
	if err := svc.CreateTask(ctx, waiting.ID, task.Title); err != nil {
		return backendFailure(errOut, err)
	}
	if err := svc.DeleteTask(ctx, inbox.ID, task.ID); err != nil {
		return backendFailure(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
