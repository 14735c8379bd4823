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
)

func init() {
	Register(&ListsCmd{})
}

// ListsCmd implements the lists command.
type ListsCmd struct{}

func (c *ListsCmd) Name() string      { return "lists" }
func (c *ListsCmd) Aliases() []string { return nil }
func (c *ListsCmd) Synopsis() string  { return "Print all lists" }
func (c *ListsCmd) Usage() string     { return "triage lists [common flags]" }
func (c *ListsCmd) NeedsAuth() bool   { return true }

func (c *ListsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListsCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	lists, err := svc.ListLists(ctx)
	if err != nil {
		return backendFailure(errOut, err)
	}

	for _, list := range lists {
		output.FormatListName(out, list)
	}
	if !cfg.Quiet {
		c.printRoles(cfg, lists, out)
	}

	return exitcode.Success
}

// printRoles shows which lists serve as inbox and waiting list.
func (c *ListsCmd) printRoles(cfg *config.Config, lists []service.TaskList, out io.Writer) {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "inbox:   %s\n", roleName(lists, cfg.Settings.InboxList))
	fmt.Fprintf(out, "waiting: %s\n", roleName(lists, cfg.Settings.WaitingList))
}

func roleName(lists []service.TaskList, name string) string {
	if name != "" {
		if _, err := service.MatchList(lists, name); err != nil {
			return name + " (missing)"
		}
		return name
	}
	for _, list := range lists {
		if list.IsDefault {
			return list.Title + " [default]"
		}
	}
	return "(default)"
}
