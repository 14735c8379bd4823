package output

import (
	"bytes"
	"testing"
	"time"

	"triage/internal/scheduler"
	"triage/internal/service"
)

func TestFormatTask(t *testing.T) {
	tests := []struct {
		name    string
		num     int
		title   string
		minutes int
		want    string
	}{
		{"basic", 1, "call bank #20min", 20, "   1   20m  call bank #20min\n"},
		{"wide", 120, "write report", 7, " 120    7m  write report\n"},
		{"untitled", 3, "  ", 7, "   3    7m  (untitled)\n"},
		{"newlines", 4, "line one\nline two", 7, "   4    7m  line one line two\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			FormatTask(&buf, tt.num, service.Task{Title: tt.title}, tt.minutes)
			if buf.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, buf.String())
			}
		})
	}
}

func TestFormatListHeader(t *testing.T) {
	var buf bytes.Buffer
	FormatListHeader(&buf, "Inbox", true)
	want := "------------\nInbox [default]\n------------\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestFormatPlacement_UsesLocalTime(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	start := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	p := scheduler.Placement{
		Task:  scheduler.Task{Title: "call bank", Minutes: 20},
		Start: start,
		End:   start.Add(20 * time.Minute),
	}

	var buf bytes.Buffer
	FormatPlacement(&buf, p, loc)
	want := "10:00-10:20  call bank\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}
