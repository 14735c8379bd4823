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
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	waiting bool
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"new"} }
func (c *AddCmd) Synopsis() string  { return "Create an inbox task" }
func (c *AddCmd) Usage() string     { return "triage add [--waiting] <title...>" }
func (c *AddCmd) NeedsAuth() bool   { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.waiting, "waiting", false, "")
	fs.BoolVar(&c.waiting, "w", false, "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	title := strings.Join(args, " ")
	if strings.TrimSpace(title) == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	list, code := selectList(ctx, cfg, svc, c.waiting, errOut)
	if code != exitcode.Success {
		return code
	}

	if err := svc.CreateTask(ctx, list.ID, title); err != nil {
		return backendFailure(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
