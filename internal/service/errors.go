package service

import (
	"errors"
	"fmt"
	"strings"
)

// Backend errors that commands map to exit codes.
var (
	ErrAuth     = errors.New("token expired or revoked (run: triage login)")
	ErrNotFound = errors.New("not found")
	ErrTimeout  = errors.New("request timed out")
)

// MatchList picks the list whose title matches name, ignoring case and
// surrounding whitespace.
func MatchList(lists []TaskList, name string) (TaskList, error) {
	name = strings.TrimSpace(name)
	nameLower := strings.ToLower(name)

	var matches []TaskList
	for _, list := range lists {
		if strings.ToLower(strings.TrimSpace(list.Title)) == nameLower {
			matches = append(matches, list)
		}
	}

	switch len(matches) {
	case 0:
		return TaskList{}, fmt.Errorf("list not found: %s", name)
	case 1:
		return matches[0], nil
	default:
		return TaskList{}, fmt.Errorf("ambiguous list name: %s", name)
	}
}
