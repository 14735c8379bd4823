package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"triage/internal/config"
	"triage/internal/exitcode"
	"triage/internal/service"
)

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses the 1-based task number at the start of args.
func ParseTaskRef(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrTaskRefRequired
	}
	ref := args[0]
	if !isAllDigits(ref) {
		return 0, fmt.Errorf("invalid task reference: %s", ref)
	}
	num, err := strconv.Atoi(ref)
	if err != nil {
		return 0, fmt.Errorf("invalid task reference: %s", ref)
	}
	return num, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// parseRefOrFail parses a task reference and prints the error if any.
// ok is false when the command should exit with exitcode.UserError.
func parseRefOrFail(args []string, errOut io.Writer) (num int, ok bool) {
	num, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return 0, false
	}
	if num < 1 {
		fmt.Fprintf(errOut, "error: task number out of range: %d\n", num)
		return 0, false
	}
	return num, true
}

// findTaskByNumber finds a task by its 1-based number in the list.
// Only the page holding the task is fetched.
func findTaskByNumber(ctx context.Context, svc service.TaskService, listID string, num int) (service.Task, error) {
	const pageSize = 100

	page := (num-1)/pageSize + 1
	indexInPage := (num - 1) % pageSize

	tasks, err := svc.ListOpenTasks(ctx, listID, page)
	if err != nil {
		return service.Task{}, err
	}

	if indexInPage >= len(tasks) {
		return service.Task{}, fmt.Errorf("task number out of range: %d", num)
	}

	return tasks[indexInPage], nil
}

// lookupTask resolves a task number and reports failures on errOut.
// code is exitcode.Success when the task was found.
func lookupTask(ctx context.Context, svc service.TaskService, list service.TaskList, num int, errOut io.Writer) (service.Task, int) {
	task, err := findTaskByNumber(ctx, svc, list.ID, num)
	if err != nil {
		if strings.Contains(err.Error(), "out of range") {
			fmt.Fprintf(errOut, "error: task number out of range: %d\n", num)
			return service.Task{}, exitcode.UserError
		}
		return service.Task{}, backendFailure(errOut, err)
	}
	return task, exitcode.Success
}

// resolveList finds a list by name. An empty name selects the default list.
func resolveList(ctx context.Context, svc service.TaskService, name string, errOut io.Writer) (service.TaskList, int) {
	if strings.TrimSpace(name) == "" {
		list, err := svc.DefaultList(ctx)
		if err != nil {
			return service.TaskList{}, backendFailure(errOut, err)
		}
		return list, exitcode.Success
	}

	list, err := svc.ResolveList(ctx, name)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			fmt.Fprintf(errOut, "error: list not found: %s\n", name)
			return service.TaskList{}, exitcode.UserError
		}
		if strings.Contains(err.Error(), "ambiguous") {
			fmt.Fprintf(errOut, "error: ambiguous list name: %s\n", name)
			return service.TaskList{}, exitcode.UserError
		}
		return service.TaskList{}, backendFailure(errOut, err)
	}
	return list, exitcode.Success
}

// selectList resolves the inbox, or the waiting list when waiting is set.
func selectList(ctx context.Context, cfg *config.Config, svc service.TaskService, waiting bool, errOut io.Writer) (service.TaskList, int) {
	if waiting {
		return resolveList(ctx, svc, cfg.Settings.WaitingList, errOut)
	}
	return resolveList(ctx, svc, cfg.Settings.InboxList, errOut)
}

// backendFailure reports a backend error and returns its exit code.
func backendFailure(errOut io.Writer, err error) int {
	if errors.Is(err, service.ErrAuth) {
		fmt.Fprintf(errOut, "error: auth error: %v\n", err)
		return exitcode.AuthError
	}
	fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	return exitcode.BackendError
}

// clock supplies the current time. Tests replace it with SetNow.
type clock struct {
	nowFn func() time.Time
}

// SetNow overrides the current time (for testing).
func (c *clock) SetNow(fn func() time.Time) {
	c.nowFn = fn
}

func (c *clock) now() time.Time {
	if c.nowFn != nil {
		return c.nowFn()
	}
	return time.Now()
}
