// Package tags extracts hashtag metadata from task and event titles.
package tags

import (
	"regexp"
	"strconv"
	"strings"
)

// Done marks a title as handled.
const Done = "#done"

var (
	hashtagRegex = regexp.MustCompile(`#[a-z0-9]+\b`)
	minutesRegex = regexp.MustCompile(`#([0-9]+)min\b`)
)

// Tags returns the lower-cased hashtags in title, in order of appearance.
func Tags(title string) []string {
	return hashtagRegex.FindAllString(strings.ToLower(title), -1)
}

// Minutes returns the duration given by a "#<n>min" tag, or fallback when the
// title has none. A zero-minute tag counts as absent.
func Minutes(title string, fallback int) int {
	match := minutesRegex.FindStringSubmatch(strings.ToLower(title))
	if match == nil {
		return fallback
	}
	n, err := strconv.Atoi(match[1])
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// IsDone reports whether title carries the #done tag.
func IsDone(title string) bool {
	for _, tag := range Tags(title) {
		if tag == Done {
			return true
		}
	}
	return false
}

// MarkDone prefixes title with the #done tag.
func MarkDone(title string) string {
	return Done + " " + title
}
