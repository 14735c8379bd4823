package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"triage/internal/config"
	"triage/internal/exitcode"
	"triage/internal/service"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command. Retitling is also how a task's
// #<n>min length is changed.
type EditCmd struct {
	waiting bool
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return []string{"e"} }
func (c *EditCmd) Synopsis() string  { return "Replace a task title" }
func (c *EditCmd) Usage() string     { return "triage edit [--waiting] <n> <title...>" }
func (c *EditCmd) NeedsAuth() bool   { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.waiting, "waiting", false, "")
	fs.BoolVar(&c.waiting, "w", false, "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	num, ok := parseRefOrFail(args, errOut)
	if !ok {
		return exitcode.UserError
	}
	title := strings.Join(args[1:], " ")
	if strings.TrimSpace(title) == "" {
		fmt.Fprintln(errOut, "error: title required")
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

	if err := svc.UpdateTaskTitle(ctx, list.ID, task.ID, title); err != nil {
		return backendFailure(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
