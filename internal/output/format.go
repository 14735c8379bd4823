// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"triage/internal/scheduler"
	"triage/internal/service"
)

const (
	// ListSeparator is the separator line for list sections.
	ListSeparator = "------------"

	clockFormat = "15:04"
)

// FormatTask formats a task line with its scheduled length.
// Format: "{N:>4}  {MIN:>3}m  {TITLE}\n"
func FormatTask(w io.Writer, num int, task service.Task, minutes int) {
	title := normalizeTitle(task.Title)
	fmt.Fprintf(w, "%4d  %3dm  %s\n", num, minutes, title)
}

// FormatListHeader formats a list section header.
func FormatListHeader(w io.Writer, title string, isDefault bool) {
	displayTitle := normalizeListTitle(title)
	if isDefault {
		displayTitle += " [default]"
	}
	fmt.Fprintln(w, ListSeparator)
	fmt.Fprintln(w, displayTitle)
	fmt.Fprintln(w, ListSeparator)
}

// FormatListName formats a list name for the lists command.
func FormatListName(w io.Writer, list service.TaskList) {
	title := normalizeListTitle(list.Title)
	if list.IsDefault {
		title += " [default]"
	}
	fmt.Fprintln(w, title)
}

// FormatPlacement formats a scheduled task with its local start and end.
// Format: "{HH:MM}-{HH:MM}  {TITLE}\n"
func FormatPlacement(w io.Writer, p scheduler.Placement, loc *time.Location) {
	fmt.Fprintf(w, "%s-%s  %s\n",
		p.Start.In(loc).Format(clockFormat),
		p.End.In(loc).Format(clockFormat),
		normalizeTitle(p.Task.Title))
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}

// normalizeListTitle normalizes a list title for display.
// Empty or whitespace-only titles become "(untitled)".
func normalizeListTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
