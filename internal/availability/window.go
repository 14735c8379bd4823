package availability

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidWindow indicates a malformed clock time or window.
var ErrInvalidWindow = errors.New("invalid availability window")

// Clock is a time of day with minute precision.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses a zero-padded 24-hour "HHMM" value.
func ParseClock(s string) (Clock, error) {
	if len(s) != 4 {
		return Clock{}, fmt.Errorf("%w: clock time must be HHMM: %q", ErrInvalidWindow, s)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return Clock{}, fmt.Errorf("%w: clock time must be HHMM: %q", ErrInvalidWindow, s)
		}
	}
	hour, _ := strconv.Atoi(s[:2])
	minute, _ := strconv.Atoi(s[2:])
	if hour > 23 || minute > 59 {
		return Clock{}, fmt.Errorf("%w: clock time out of range: %q", ErrInvalidWindow, s)
	}
	return Clock{Hour: hour, Minute: minute}, nil
}

// String formats the clock as HHMM.
func (c Clock) String() string {
	return fmt.Sprintf("%02d%02d", c.Hour, c.Minute)
}

func (c Clock) minutes() int {
	return c.Hour*60 + c.Minute
}

// Window is a clock-time range within a single day.
type Window struct {
	Start Clock
	End   Clock
}

// ParseWindow parses a pair of HHMM values. End must be after start.
func ParseWindow(start, end string) (Window, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Window{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Window{}, err
	}
	if e.minutes() <= s.minutes() {
		return Window{}, fmt.Errorf("%w: end %s must be after start %s", ErrInvalidWindow, e, s)
	}
	return Window{Start: s, End: e}, nil
}

// Week maps each weekday to its ordered availability windows.
type Week map[time.Weekday][]Window

var weekdayNames = map[string]time.Weekday{
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
	"sun": time.Sunday,
}

// ParseWeekday resolves a three-letter weekday name (mon..sun), case-insensitive.
func ParseWeekday(name string) (time.Weekday, error) {
	wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown weekday: %s", name)
	}
	return wd, nil
}

// AllDay returns a week where every day is available from 00:00 to 23:59.
func AllDay() Week {
	week := make(Week, 7)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		week[wd] = []Window{{Start: Clock{0, 0}, End: Clock{23, 59}}}
	}
	return week
}

// Clone returns a deep copy of the week.
func (w Week) Clone() Week {
	out := make(Week, len(w))
	for wd, windows := range w {
		out[wd] = append([]Window(nil), windows...)
	}
	return out
}
