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
	Register(&DoneCmd{})
}

// DoneCmd implements the done command.
type DoneCmd struct {
	waiting bool
}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"d"} }
func (c *DoneCmd) Synopsis() string  { return "Mark a task completed" }
func (c *DoneCmd) Usage() string     { return "triage done [--waiting] <n>" }
func (c *DoneCmd) NeedsAuth() bool   { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.waiting, "waiting", false, "")
	fs.BoolVar(&c.waiting, "w", false, "")
}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	num, ok := parseRefOrFail(args, errOut)
	if !ok {
		return exitcode.UserError
	}

	list, code := selectList(ctx, cfg, svc, c.waiting, errOut)
	if code != exitcode.Success {
		return code
	}
	task, code := lookupTask(ctx, svc, list, num, errOut)
	if code != exitcode.Success {
		return code
	}

	if err := svc.CompleteTask(ctx, list.ID, task.ID); err != nil {
		return backendFailure(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
