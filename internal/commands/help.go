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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "triage help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  triage                                     List inbox tasks
  triage list [common flags] [--waiting] [--page <n>]
  triage add [common flags] [--waiting] <title...>
  triage edit [common flags] [--waiting] <n> <title...>
  triage done [common flags] [--waiting] <n>
  triage rm [common flags] [--waiting] <n>
  triage wait [common flags] <n>
  triage defer [common flags] [--waiting] --days <n> <n>
  triage defer [common flags] [--waiting] --weekday <mon..sun> [--weeks <n>] <n>
  triage collect [common flags]
  triage plan [common flags] [--dry-run]
  triage lists [common flags]
  triage login [common flags]
  triage logout [common flags]
  triage help
  triage version

Task length:
  Add #<n>min to a title to set its length in minutes; otherwise
  default_task_minutes from config.yaml applies.

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
