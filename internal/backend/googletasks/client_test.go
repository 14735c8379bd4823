package googletasks

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"triage/internal/service"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(context.Background(), zerolog.Nop(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return c
}

func TestAllOpenTasks_FollowsPages(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/lists/@default/tasks") {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("showCompleted") != "false" {
			t.Errorf("expected completed tasks to be excluded, got %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("pageToken") {
		case "":
			json.NewEncoder(w).Encode(&tasks.Tasks{
				Items:         []*tasks.Task{{Id: "1", Title: "call bank #20min"}},
				NextPageToken: "p2",
			})
		case "p2":
			json.NewEncoder(w).Encode(&tasks.Tasks{
				Items: []*tasks.Task{{Id: "2", Title: "write report"}},
			})
		}
	})

	got, err := c.AllOpenTasks(context.Background(), DefaultListID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(got))
	}
	if got[0].ID != "1" || got[1].Title != "write report" {
		t.Errorf("unexpected tasks: %+v", got)
	}
}

func TestUpdateTaskTitle(t *testing.T) {
	var patched tasks.Task
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("expected PATCH, got %s", r.Method)
		}
		json.NewDecoder(r.Body).Decode(&patched)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(&patched)
	})

	if err := c.UpdateTaskTitle(context.Background(), "list1", "task1", "call bank #30min"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if patched.Title != "call bank #30min" {
		t.Errorf("expected new title, got %q", patched.Title)
	}
}

func TestClient_WrapsAuthErrors(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"code":401,"message":"Invalid Credentials"}}`))
	})

	err := c.CompleteTask(context.Background(), "list1", "task1")
	if !errors.Is(err, service.ErrAuth) {
		t.Errorf("expected ErrAuth, got %v", err)
	}
}
