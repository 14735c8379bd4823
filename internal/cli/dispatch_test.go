package cli_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"triage/internal/cli"
	"triage/internal/commands"
	"triage/internal/config"
	"triage/internal/exitcode"
	"triage/internal/service"
	"triage/internal/testutil"
)

// testFactory creates a service factory that returns the given FakeService.
func testFactory(svc *testutil.FakeService) cli.ServiceFactory {
	return func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return svc, nil
	}
}

func run(t *testing.T, factory cli.ServiceFactory, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	var outBuf, errBuf bytes.Buffer
	code = dispatcher.Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestDispatcher_UserErrors(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		stderr string
	}{
		{"unknown_command", []string{"unknowncmd"}, "error: unknown command: unknowncmd\n"},
		{"flag_before_command", []string{"--quiet"}, "error: unknown command: --quiet\n"},
		{"unknown_flag", []string{"help", "--unknown"}, "error: unknown flag: -unknown\n"},
		{"missing_flag_value", []string{"defer", "--days"}, "error: flag needs an argument: -days\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, code := run(t, testFactory(testutil.NewFakeService()), tt.args...)

			if code != exitcode.UserError {
				t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
			}
			if stderr != tt.stderr {
				t.Errorf("expected %q, got %q", tt.stderr, stderr)
			}
		})
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	stdout, stderr, code := run(t, testFactory(testutil.NewFakeService()), "help")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("expected help output to contain 'Usage:'")
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	stdout, _, code := run(t, testFactory(testutil.NewFakeService()), "version")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "triage 0.1.0\n" {
		t.Errorf("expected 'triage 0.1.0\\n', got %q", stdout)
	}
}

func TestDispatcher_NoArgsListsInbox(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	svc := testutil.NewFakeService()
	svc.AddTask(testutil.DefaultListID, "t1", "Buy milk")

	stdout, stderr, code := run(t, testFactory(svc))

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d: %s", exitcode.Success, code, stderr)
	}
	if !strings.Contains(stdout, "   1    7m  Buy milk\n") {
		t.Errorf("expected inbox listing, got %q", stdout)
	}
}

func TestDispatcher_LoadsSettings(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("default_task_minutes: 25\n"), 0600); err != nil {
		t.Fatalf("failed to write config.yaml: %v", err)
	}
	svc := testutil.NewFakeService()
	svc.AddTask(testutil.DefaultListID, "t1", "Buy milk")

	stdout, _, code := run(t, testFactory(svc), "list", "--config", dir)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.Contains(stdout, "   1   25m  Buy milk\n") {
		t.Errorf("expected configured default length, got %q", stdout)
	}
}

func TestDispatcher_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("timezone: Nowhere/Special\n"), 0600); err != nil {
		t.Fatalf("failed to write config.yaml: %v", err)
	}

	_, stderr, code := run(t, testFactory(testutil.NewFakeService()), "plan", "--config", dir)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.HasPrefix(stderr, "error: config error: invalid config") {
		t.Errorf("expected config error, got %q", stderr)
	}
}

func TestDispatcher_FactoryErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"auth", fmt.Errorf("refresh: %w", service.ErrAuth), exitcode.AuthError},
		{"token_file", errors.New("failed to read token.json: no such file"), exitcode.AuthError},
		{"backend", errors.New("failed to create calendar service"), exitcode.BackendError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
				return nil, tt.err
			}

			_, _, code := run(t, factory, "list", "--config", t.TempDir())

			if code != tt.code {
				t.Errorf("expected exit code %d, got %d", tt.code, code)
			}
		})
	}
}

func TestDispatcher_DebugLogsToStderr(t *testing.T) {
	_, stderr, code := run(t, testFactory(testutil.NewFakeService()), "list", "--config", t.TempDir(), "--debug")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.Contains(stderr, "settings loaded") {
		t.Errorf("expected debug log on stderr, got %q", stderr)
	}
}
