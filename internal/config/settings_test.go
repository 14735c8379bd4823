package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "time/tzdata"

	"triage/internal/availability"
)

func TestLoadSettings_MissingFileUsesDefaults(t *testing.T) {
	s, err := LoadSettings(filepath.Join(t.TempDir(), SettingsFile))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Location != time.Local {
		t.Errorf("expected local timezone, got %v", s.Location)
	}
	if s.DefaultTaskMinutes != DefaultTaskMinutes {
		t.Errorf("expected %d, got %d", DefaultTaskMinutes, s.DefaultTaskMinutes)
	}
	if s.DayEndHour != DefaultDayEndHour {
		t.Errorf("expected %d, got %d", DefaultDayEndHour, s.DayEndHour)
	}
	if s.CalendarID != "primary" {
		t.Errorf("expected primary calendar, got %q", s.CalendarID)
	}
	if s.WaitingList != "Waiting" {
		t.Errorf("expected Waiting list, got %q", s.WaitingList)
	}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		windows := s.Week[wd]
		if len(windows) != 1 || windows[0].Start.String() != "0000" || windows[0].End.String() != "2359" {
			t.Errorf("%s: expected 0000-2359, got %v", wd, windows)
		}
	}
}

func TestParseSettings_Full(t *testing.T) {
	data := []byte(`
timezone: Europe/Amsterdam
default_task_minutes: 15
day_end_hour: 4
lookback_days: 30
calendar_id: work@example.com
lists:
  inbox: Inbox
  waiting: Later
availability:
  mon:
    - {start: "0900", end: "1200"}
    - {start: "1300", end: "1730"}
  Sat:
    - {start: "1000", end: "1100"}
`)
	s, err := ParseSettings(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Location.String() != "Europe/Amsterdam" {
		t.Errorf("expected Europe/Amsterdam, got %s", s.Location)
	}
	if s.DefaultTaskMinutes != 15 || s.DayEndHour != 4 || s.LookbackDays != 30 {
		t.Errorf("unexpected numbers: %+v", s)
	}
	if s.CalendarID != "work@example.com" {
		t.Errorf("expected work calendar, got %q", s.CalendarID)
	}
	if s.InboxList != "Inbox" || s.WaitingList != "Later" {
		t.Errorf("unexpected lists: inbox=%q waiting=%q", s.InboxList, s.WaitingList)
	}

	mon := s.Week[time.Monday]
	if len(mon) != 2 {
		t.Fatalf("expected 2 monday windows, got %d", len(mon))
	}
	want := availability.Window{Start: availability.Clock{Hour: 13}, End: availability.Clock{Hour: 17, Minute: 30}}
	if mon[1] != want {
		t.Errorf("expected %v, got %v", want, mon[1])
	}
	if len(s.Week[time.Saturday]) != 1 {
		t.Errorf("expected 1 saturday window, got %d", len(s.Week[time.Saturday]))
	}
	if len(s.Week[time.Tuesday]) != 0 {
		t.Errorf("expected no tuesday windows, got %v", s.Week[time.Tuesday])
	}
}

func TestParseSettings_EmptyKeepsDefaults(t *testing.T) {
	s, err := ParseSettings([]byte("lists:\n  inbox: Inbox\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.InboxList != "Inbox" {
		t.Errorf("expected Inbox, got %q", s.InboxList)
	}
	if s.WaitingList != DefaultWaitingList {
		t.Errorf("expected default waiting list, got %q", s.WaitingList)
	}
	if len(s.Week) != 7 {
		t.Errorf("expected all-day week, got %v", s.Week)
	}
}

func TestParseSettings_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad_yaml", "timezone: [unterminated"},
		{"unknown_timezone", "timezone: Mars/Olympus_Mons"},
		{"zero_task_minutes", "default_task_minutes: 0"},
		{"day_end_hour_range", "day_end_hour: 24"},
		{"negative_lookback", "lookback_days: -1"},
		{"unknown_weekday", "availability:\n  funday:\n    - {start: \"0900\", end: \"1000\"}\n"},
		{"bad_clock", "availability:\n  mon:\n    - {start: \"9am\", end: \"1000\"}\n"},
		{"reversed_window", "availability:\n  mon:\n    - {start: \"1000\", end: \"0900\"}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSettings([]byte(tt.data))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestConfig_LoadSettings(t *testing.T) {
	dir := t.TempDir()
	cfg, err := New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := os.WriteFile(cfg.SettingsPath(), []byte("default_task_minutes: 25\n"), 0600); err != nil {
		t.Fatalf("failed to write settings: %v", err)
	}
	if err := cfg.LoadSettings(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Settings.DefaultTaskMinutes != 25 {
		t.Errorf("expected 25, got %d", cfg.Settings.DefaultTaskMinutes)
	}
}

func TestConfig_Paths(t *testing.T) {
	cfg, _ := New("/tmp/triage-test")
	if got := cfg.SettingsPath(); got != filepath.Join("/tmp/triage-test", "config.yaml") {
		t.Errorf("unexpected settings path: %s", got)
	}
	if got := cfg.TokenPath(); got != filepath.Join("/tmp/triage-test", "token.json") {
		t.Errorf("unexpected token path: %s", got)
	}
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if got := DefaultConfigDir(); got != filepath.Join("/xdg", AppName) {
		t.Errorf("expected /xdg/triage, got %s", got)
	}
}
