// Package registry defines the habit configuration document: which habits
// exist, which are enabled, and which one is current.
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"tableflip.dev/habit/pkg/history"
)

const (
	// Version is written into every document this package produces.
	Version = "2.0"
	// DefaultHabitName is used when no habit has been configured.
	DefaultHabitName = "🏋️ Gym"
)

var (
	ErrInvalidName   = errors.New("registry: habit name must not be empty")
	ErrDuplicateName = errors.New("registry: a habit with this name already exists")
	ErrUnknownHabit  = errors.New("registry: unknown habit")
	ErrHabitDisabled = errors.New("registry: habit is disabled")
	ErrMalformed     = errors.New("registry: malformed habit config")
)

// Habit is one tracked habit. The name is its identity.
type Habit struct {
	Name    string    `json:"name"`
	Created time.Time `json:"created"`
	Enabled bool      `json:"enabled"`
}

type habitJSON struct {
	Name    string `json:"name"`
	Created string `json:"created,omitempty"`
	Enabled *bool  `json:"enabled,omitempty"`
}

// MarshalJSON writes created as an ISO-8601 UTC timestamp.
func (h Habit) MarshalJSON() ([]byte, error) {
	enabled := h.Enabled
	out := habitJSON{Name: h.Name, Enabled: &enabled}
	if !h.Created.IsZero() {
		out.Created = h.Created.UTC().Format(time.RFC3339Nano)
	}
	return json.Marshal(out)
}

// UnmarshalJSON treats a missing enabled flag as enabled.
func (h *Habit) UnmarshalJSON(b []byte) error {
	var in habitJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	h.Name = in.Name
	h.Enabled = in.Enabled == nil || *in.Enabled
	h.Created = time.Time{}
	if in.Created != "" {
		t, err := time.Parse(time.RFC3339Nano, in.Created)
		if err != nil {
			return fmt.Errorf("registry: habit %q created: %w", in.Name, err)
		}
		h.Created = t
	}
	return nil
}

// Registry is the habit-config document.
type Registry struct {
	Mode         history.Mode     `json:"mode"`
	CurrentHabit string           `json:"currentHabit"`
	Habits       map[string]Habit `json:"habits"`
	Version      string           `json:"version,omitempty"`
}

// Default is the fallback used when the config document is missing or unusable.
func Default() Registry {
	return Registry{
		Mode:         history.ModeSingle,
		CurrentHabit: DefaultHabitName,
		Habits: map[string]Habit{
			DefaultHabitName: {Name: DefaultHabitName, Enabled: true},
		},
		Version: Version,
	}
}

// Empty is a registry with no habits, as written before setup.
func Empty() Registry {
	return Registry{Mode: history.ModeSingle, Habits: map[string]Habit{}, Version: Version}
}

// Validate checks the document shape after decoding.
func Validate(r Registry) error {
	if r.Habits == nil {
		return fmt.Errorf("%w: habits missing", ErrMalformed)
	}
	if len(r.Habits) == 0 {
		return fmt.Errorf("%w: no habits", ErrMalformed)
	}
	for key, h := range r.Habits {
		if strings.TrimSpace(key) == "" {
			return fmt.Errorf("%w: empty habit name", ErrMalformed)
		}
		if h.Name != "" && h.Name != key {
			return fmt.Errorf("%w: habit %q is stored under %q", ErrMalformed, h.Name, key)
		}
	}
	if r.Mode != "" && r.Mode != history.ModeSingle && r.Mode != history.ModeMultiple {
		return fmt.Errorf("%w: unknown mode %q", ErrMalformed, r.Mode)
	}
	return nil
}

// Clone copies the registry.
func (r Registry) Clone() Registry {
	cp := r
	cp.Habits = make(map[string]Habit, len(r.Habits))
	for k, v := range r.Habits {
		cp.Habits[k] = v
	}
	return cp
}

// Has reports whether name is registered.
func (r Registry) Has(name string) bool {
	_, ok := r.Habits[name]
	return ok
}

// Get returns the habit called name.
func (r Registry) Get(name string) (Habit, error) {
	h, ok := r.Habits[name]
	if !ok {
		return Habit{}, fmt.Errorf("%w: %q", ErrUnknownHabit, name)
	}
	return h, nil
}

// Names lists habits ordered by creation time, then name.
func (r Registry) Names() []string {
	list := make([]Habit, 0, len(r.Habits))
	for name, h := range r.Habits {
		h.Name = name
		list = append(list, h)
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Created.Equal(list[j].Created) {
			return list[i].Name < list[j].Name
		}
		return list[i].Created.Before(list[j].Created)
	})
	names := make([]string, len(list))
	for i, h := range list {
		names[i] = h.Name
	}
	return names
}

// Enabled lists enabled habits in Names order.
func (r Registry) Enabled() []string {
	names := r.Names()
	out := names[:0]
	for _, name := range names {
		if r.Habits[name].Enabled {
			out = append(out, name)
		}
	}
	return out
}

// DerivedMode is single for at most one enabled habit.
func (r Registry) DerivedMode() history.Mode {
	if len(r.Enabled()) <= 1 {
		return history.ModeSingle
	}
	return history.ModeMultiple
}

// Normalize recomputes the mode and repairs a stale current habit.
func (r Registry) Normalize() Registry {
	out := r.Clone()
	for name, h := range out.Habits {
		if h.Name != name {
			h.Name = name
			out.Habits[name] = h
		}
	}
	out.Mode = out.DerivedMode()
	out.CurrentHabit = out.fallbackCurrent()
	if out.Version == "" {
		out.Version = Version
	}
	return out
}

func (r Registry) fallbackCurrent() string {
	if h, ok := r.Habits[r.CurrentHabit]; ok && h.Enabled {
		return r.CurrentHabit
	}
	if enabled := r.Enabled(); len(enabled) > 0 {
		return enabled[0]
	}
	if names := r.Names(); len(names) > 0 {
		return names[0]
	}
	return ""
}

// CleanName trims a user supplied name and rejects empty ones.
func CleanName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", ErrInvalidName
	}
	return name, nil
}

// Add registers a new enabled habit. The first habit becomes current.
func (r Registry) Add(raw string, now time.Time) (Registry, error) {
	name, err := CleanName(raw)
	if err != nil {
		return r, err
	}
	if r.Has(name) {
		return r, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	out := r.Clone()
	out.Habits[name] = Habit{Name: name, Created: now, Enabled: true}
	if len(out.Habits) == 1 {
		out.CurrentHabit = name
	}
	return out.Normalize(), nil
}

// Rename changes a habit's name, keeping its record. Renaming to the same
// name is a no-op.
func (r Registry) Rename(old, raw string) (Registry, error) {
	h, err := r.Get(old)
	if err != nil {
		return r, err
	}
	name, err := CleanName(raw)
	if err != nil {
		return r, err
	}
	if name == old {
		return r.Clone(), nil
	}
	if r.Has(name) {
		return r, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	out := r.Clone()
	delete(out.Habits, old)
	h.Name = name
	out.Habits[name] = h
	if out.CurrentHabit == old {
		out.CurrentHabit = name
	}
	return out.Normalize(), nil
}

// Delete removes a habit.
func (r Registry) Delete(name string) (Registry, error) {
	if _, err := r.Get(name); err != nil {
		return r, err
	}
	out := r.Clone()
	delete(out.Habits, name)
	return out.Normalize(), nil
}

// SetEnabled enables or disables a habit.
func (r Registry) SetEnabled(name string, enabled bool) (Registry, error) {
	h, err := r.Get(name)
	if err != nil {
		return r, err
	}
	out := r.Clone()
	h.Enabled = enabled
	out.Habits[name] = h
	return out.Normalize(), nil
}

// Select makes an enabled habit current.
func (r Registry) Select(name string) (Registry, error) {
	h, err := r.Get(name)
	if err != nil {
		return r, err
	}
	if !h.Enabled {
		return r, fmt.Errorf("%w: %q", ErrHabitDisabled, name)
	}
	out := r.Clone()
	out.CurrentHabit = name
	return out.Normalize(), nil
}

// Resolve picks a habit from a user parameter: a 1-based index into the
// enabled habits, or an exact enabled name. Anything else falls back to the
// current habit, then the first enabled one.
func (r Registry) Resolve(param string) string {
	enabled := r.Enabled()
	if len(enabled) == 0 {
		if names := r.Names(); len(names) > 0 {
			return names[0]
		}
		return DefaultHabitName
	}
	if param != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(param)); err == nil && n >= 1 && n <= len(enabled) {
			return enabled[n-1]
		}
		for _, name := range enabled {
			if name == param {
				return name
			}
		}
	}
	if h, ok := r.Habits[r.CurrentHabit]; ok && h.Enabled {
		return r.CurrentHabit
	}
	return enabled[0]
}

// Lookup is Resolve without the fallbacks: param must be an index or a
// registered name.
func (r Registry) Lookup(param string) (string, error) {
	if r.Has(param) {
		return param, nil
	}
	enabled := r.Enabled()
	if n, err := strconv.Atoi(strings.TrimSpace(param)); err == nil && n >= 1 && n <= len(enabled) {
		return enabled[n-1], nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownHabit, param)
}

// Reset restores default settings while keeping the habits.
func (r Registry) Reset() Registry {
	out := r.Clone()
	out.Version = Version
	out.CurrentHabit = ""
	if len(out.Habits) == 0 {
		return Default()
	}
	return out.Normalize()
}
