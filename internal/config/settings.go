package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"triage/internal/availability"
)

// ErrInvalidConfig is returned when config.yaml cannot be used.
var ErrInvalidConfig = errors.New("invalid config")

// Defaults applied when config.yaml omits a value.
const (
	DefaultTimezone    = "Local"
	DefaultTaskMinutes = 7
	DefaultDayEndHour  = 3
	DefaultLookback    = 60
	DefaultCalendarID  = "primary"
	DefaultWaitingList = "Waiting"
)

// Settings control how tasks are scheduled.
type Settings struct {
	// Location is the timezone availability windows are written in.
	Location *time.Location

	// Week holds the availability windows per weekday.
	Week availability.Week

	// DefaultTaskMinutes is the length of a task without a #<n>min tag.
	DefaultTaskMinutes int

	// DayEndHour is the local hour before which "today" still means the
	// previous date.
	DayEndHour int

	// LookbackDays bounds how far back collect searches for open day events.
	LookbackDays int

	// CalendarID is the calendar events are read from and written to.
	CalendarID string

	// InboxList is the title of the inbox task list. Empty selects the
	// default list.
	InboxList string

	// WaitingList is the title of the waiting task list.
	WaitingList string
}

// DefaultSettings returns the settings used when no config.yaml exists:
// local time, available all day, every day.
func DefaultSettings() Settings {
	return Settings{
		Location:           time.Local,
		Week:               availability.AllDay(),
		DefaultTaskMinutes: DefaultTaskMinutes,
		DayEndHour:         DefaultDayEndHour,
		LookbackDays:       DefaultLookback,
		CalendarID:         DefaultCalendarID,
		WaitingList:        DefaultWaitingList,
	}
}

type fileWindow struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

type fileSettings struct {
	Timezone           string                  `yaml:"timezone"`
	DefaultTaskMinutes *int                    `yaml:"default_task_minutes"`
	DayEndHour         *int                    `yaml:"day_end_hour"`
	LookbackDays       *int                    `yaml:"lookback_days"`
	CalendarID         string                  `yaml:"calendar_id"`
	Lists              fileLists               `yaml:"lists"`
	Availability       map[string][]fileWindow `yaml:"availability"`
}

type fileLists struct {
	Inbox   string  `yaml:"inbox"`
	Waiting *string `yaml:"waiting"`
}

// LoadSettings reads settings from the YAML file at path.
// A missing file yields DefaultSettings.
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseSettings(data)
}

// ParseSettings decodes YAML settings and fills in defaults.
func ParseSettings(data []byte) (Settings, error) {
	var raw fileSettings
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Settings{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	s := DefaultSettings()

	if raw.Timezone != "" && raw.Timezone != DefaultTimezone {
		loc, err := time.LoadLocation(raw.Timezone)
		if err != nil {
			return Settings{}, fmt.Errorf("%w: timezone: %v", ErrInvalidConfig, err)
		}
		s.Location = loc
	}

	if raw.DefaultTaskMinutes != nil {
		if *raw.DefaultTaskMinutes <= 0 {
			return Settings{}, fmt.Errorf("%w: default_task_minutes must be positive", ErrInvalidConfig)
		}
		s.DefaultTaskMinutes = *raw.DefaultTaskMinutes
	}

	if raw.DayEndHour != nil {
		if *raw.DayEndHour < 0 || *raw.DayEndHour > 23 {
			return Settings{}, fmt.Errorf("%w: day_end_hour must be between 0 and 23", ErrInvalidConfig)
		}
		s.DayEndHour = *raw.DayEndHour
	}

	if raw.LookbackDays != nil {
		if *raw.LookbackDays <= 0 {
			return Settings{}, fmt.Errorf("%w: lookback_days must be positive", ErrInvalidConfig)
		}
		s.LookbackDays = *raw.LookbackDays
	}

	if raw.CalendarID != "" {
		s.CalendarID = raw.CalendarID
	}
	s.InboxList = raw.Lists.Inbox
	if raw.Lists.Waiting != nil {
		s.WaitingList = *raw.Lists.Waiting
	}

	if raw.Availability != nil {
		week, err := parseWeek(raw.Availability)
		if err != nil {
			return Settings{}, err
		}
		s.Week = week
	}

	return s, nil
}

// parseWeek converts the availability mapping. Weekdays that are not listed
// have no availability.
func parseWeek(raw map[string][]fileWindow) (availability.Week, error) {
	week := availability.Week{}
	for name, windows := range raw {
		day, err := availability.ParseWeekday(name)
		if err != nil {
			return nil, fmt.Errorf("%w: availability: %v", ErrInvalidConfig, err)
		}
		for _, fw := range windows {
			w, err := availability.ParseWindow(fw.Start, fw.End)
			if err != nil {
				return nil, fmt.Errorf("%w: availability %s: %v", ErrInvalidConfig, name, err)
			}
			week[day] = append(week[day], w)
		}
	}
	return week, nil
}
