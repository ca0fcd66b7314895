// Package tracking describes the init document: the day tracking started and
// when setup ran.
package tracking

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/habit/pkg/datekey"
)

// Version is written into init documents.
const Version = "2.0"

var ErrInvalidDate = errors.New("tracking: invalid start date, expected YYYY-MM-DD")

// StartChoice names how the start date is picked during setup.
type StartChoice string

const (
	StartToday StartChoice = "today"
	StartYear  StartChoice = "year"
	StartMonth StartChoice = "month"
)

// Window is the init document.
type Window struct {
	Start     time.Time `json:"start"`
	SetupDate time.Time `json:"setupDate"`
	Version   string    `json:"version,omitempty"`

	configured bool
}

type windowJSON struct {
	Start     string `json:"start,omitempty"`
	SetupDate string `json:"setupDate,omitempty"`
	Version   string `json:"version,omitempty"`
}

// New builds an init document starting on the calendar day of start.
func New(start, now time.Time) Window {
	return Window{Start: datekey.Day(start), SetupDate: now, Version: Version, configured: true}
}

// Fallback is used when no init document exists: tracking from January 1st
// of the current year.
func Fallback(now time.Time) Window {
	now = now.In(time.Local)
	return Window{Start: time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.Local)}
}

// Configured reports whether the window came from a setup run.
func (w Window) Configured() bool {
	return w.configured
}

// StartDay is local midnight of the start day.
func (w Window) StartDay() time.Time {
	return datekey.Day(w.Start)
}

// ParseStart resolves a start choice or a custom YYYY-MM-DD date.
func ParseStart(raw string, now time.Time) (time.Time, error) {
	now = now.In(time.Local)
	switch StartChoice(strings.ToLower(strings.TrimSpace(raw))) {
	case "", StartToday:
		return datekey.Day(now), nil
	case StartYear:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.Local), nil
	case StartMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local), nil
	}
	t, err := datekey.Parse(strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return t, nil
}

// MarshalJSON writes ISO-8601 timestamps.
func (w Window) MarshalJSON() ([]byte, error) {
	out := windowJSON{Version: w.Version}
	if !w.Start.IsZero() {
		out.Start = w.Start.UTC().Format(time.RFC3339Nano)
	}
	if !w.SetupDate.IsZero() {
		out.SetupDate = w.SetupDate.UTC().Format(time.RFC3339Nano)
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads ISO-8601 timestamps. A document without a start is
// treated as not configured.
func (w *Window) UnmarshalJSON(b []byte) error {
	var in windowJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	*w = Window{Version: in.Version}
	if in.Start != "" {
		t, err := time.Parse(time.RFC3339Nano, in.Start)
		if err != nil {
			return fmt.Errorf("tracking: start: %w", err)
		}
		w.Start = t.In(time.Local)
		w.configured = true
	}
	if in.SetupDate != "" {
		t, err := time.Parse(time.RFC3339Nano, in.SetupDate)
		if err != nil {
			return fmt.Errorf("tracking: setupDate: %w", err)
		}
		w.SetupDate = t.In(time.Local)
	}
	return nil
}
