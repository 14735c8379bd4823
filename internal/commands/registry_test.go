package commands

import (
	"context"
	"errors"
	"net"
	"net/http"
	"testing"
)

func TestRegistry_FindByAlias(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&PlanCmd{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cmd, ok := r.Find("ic")
	if !ok {
		t.Fatal("expected alias 'ic' to resolve")
	}
	if cmd.Name() != "plan" {
		t.Errorf("expected plan, got %q", cmd.Name())
	}
	if len(r.All()) != 1 {
		t.Errorf("expected aliases not to be listed, got %d commands", len(r.All()))
	}
}

func TestRegistry_Clash(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&DeferCmd{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := r.Register(&DeferCmd{}); err == nil {
		t.Error("expected duplicate name to be rejected")
	}
	if err := r.Register(&aliasClash{}); err == nil {
		t.Error("expected alias 'c' to clash with defer")
	}
}

type aliasClash struct{ VersionCmd }

func (aliasClash) Name() string      { return "clear" }
func (aliasClash) Aliases() []string { return []string{"c"} }

func TestDefaultRegistry_AllSorted(t *testing.T) {
	var prev string
	for _, cmd := range DefaultRegistry.All() {
		if cmd.Name() < prev {
			t.Errorf("expected sorted commands, %q after %q", cmd.Name(), prev)
		}
		prev = cmd.Name()
	}
	for _, name := range []string{"plan", "collect", "defer", "wait", "list", "add", "done", "edit", "rm"} {
		if _, ok := DefaultRegistry.Find(name); !ok {
			t.Errorf("expected %q to be registered", name)
		}
	}
}

func TestAwaitAuthCode_StateMismatch(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	defer listener.Close()

	go func() {
		resp, err := http.Get("http://" + listener.Addr().String() + "/callback?state=forged&code=abc")
		if err == nil {
			resp.Body.Close()
		}
	}()

	_, err = awaitAuthCode(context.Background(), listener, "expected")
	if !errors.Is(err, errStateMismatch) {
		t.Errorf("expected state mismatch, got %v", err)
	}
}

func TestAwaitAuthCode_ReturnsCode(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	defer listener.Close()

	go func() {
		resp, err := http.Get("http://" + listener.Addr().String() + "/callback?state=s1&code=abc")
		if err == nil {
			resp.Body.Close()
		}
	}()

	code, err := awaitAuthCode(context.Background(), listener, "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != "abc" {
		t.Errorf("expected code 'abc', got %q", code)
	}
}
