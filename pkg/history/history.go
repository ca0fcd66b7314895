// Package history holds the sparse per-day completion log and the edits that
// keep it consistent: toggling, legacy migration, rename and delete cascades.
//
// A History is a value. Every operation returns a new History and leaves the
// receiver untouched, so callers can stage edits and discard them.
package history

import (
	"encoding/json"
	"sort"

	"tableflip.dev/habit/pkg/datekey"
)

// Mode controls how toggles shape a day record.
type Mode string

const (
	// ModeSingle stores one boolean per day.
	ModeSingle Mode = "single"
	// ModeMultiple stores a habit name to boolean map per day.
	ModeMultiple Mode = "multiple"
)

// Family describes the variant the stored records share.
type Family int

const (
	FamilyEmpty Family = iota
	FamilyScalar
	FamilyMulti
)

// History maps days to completion records.
type History struct {
	// Days holds the records. Use the methods to edit it.
	Days map[datekey.Key]Record
	// Owner is the habit legacy scalar records belong to. It is not persisted.
	Owner string
	// Dropped lists keys the last decode could not read as a day.
	Dropped []string
}

// New returns an empty history.
func New() History {
	return History{Days: make(map[datekey.Key]Record)}
}

// Clone copies the history. Records are values, so a map copy is enough.
func (h History) Clone() History {
	cp := History{Days: make(map[datekey.Key]Record, len(h.Days)), Owner: h.Owner}
	for k, v := range h.Days {
		cp.Days[k] = v
	}
	return cp
}

// WithOwner returns a copy whose scalar records belong to owner.
func (h History) WithOwner(owner string) History {
	cp := h.Clone()
	cp.Owner = owner
	return cp
}

// Len is the number of recorded days.
func (h History) Len() int {
	return len(h.Days)
}

// Keys returns the recorded days in ascending order.
func (h History) Keys() []datekey.Key {
	keys := make([]datekey.Key, 0, len(h.Days))
	for k := range h.Days {
		keys = append(keys, k)
	}
	datekey.Sort(keys)
	return keys
}

// Record returns the record for day.
func (h History) Record(day datekey.Key) (Record, bool) {
	r, ok := h.Days[day]
	return r, ok
}

// Family inspects the first day in key order.
func (h History) Family() Family {
	keys := h.Keys()
	if len(keys) == 0 {
		return FamilyEmpty
	}
	if h.Days[keys[0]].Kind() == KindMulti {
		return FamilyMulti
	}
	return FamilyScalar
}

// HasScalars reports whether any legacy record remains.
func (h History) HasScalars() bool {
	for _, r := range h.Days {
		if r.Kind() == KindScalar {
			return true
		}
	}
	return false
}

// IsCompleted reports whether habit was done on day. Missing days and missing
// keys are simply not completed.
func (h History) IsCompleted(day datekey.Key, habit string) bool {
	done, _ := h.Status(day, habit)
	return done
}

// Status is IsCompleted plus whether anything was recorded for habit on day.
func (h History) Status(day datekey.Key, habit string) (done bool, logged bool) {
	r, ok := h.Days[day]
	if !ok {
		return false, false
	}
	if r.Kind() == KindScalar {
		if habit == "" || habit != h.Owner {
			return false, false
		}
		return r.Done(), true
	}
	v, ok := r.Get(habit)
	return v, ok
}

// Toggle flips habit on day. Days are created on first toggle.
func (h History) Toggle(day datekey.Key, habit string, mode Mode) History {
	done, _ := h.Status(day, habit)
	return h.Set(day, habit, mode, !done)
}

// Set records value for habit on day.
func (h History) Set(day datekey.Key, habit string, mode Mode, value bool) History {
	out := h.Clone()
	r, ok := out.Days[day]
	switch {
	case mode == ModeMultiple:
		if !ok {
			r = Multi(nil)
		}
		out.Days[day] = r.Lift(out.Owner).with(habit, value)
	case ok && r.Kind() == KindMulti:
		out.Days[day] = r.with(habit, value)
	default:
		out.Days[day] = Scalar(value)
	}
	return out
}

// MigrateLegacyToMulti rewrites every scalar record as {defaultHabit: value}.
// A history whose first day is already a multi record is returned unchanged,
// which makes the migration idempotent.
func (h History) MigrateLegacyToMulti(defaultHabit string) History {
	if h.Family() != FamilyScalar {
		return h.Clone()
	}
	out := History{Days: make(map[datekey.Key]Record, len(h.Days)), Owner: defaultHabit}
	for k, r := range h.Days {
		out.Days[k] = r.Lift(defaultHabit)
	}
	out.prune()
	return out
}

// RenameHabit moves every value recorded under old to name.
func (h History) RenameHabit(old, name string) History {
	out := h.Clone()
	if old == name {
		return out
	}
	for k, r := range out.Days {
		if r.Kind() != KindMulti {
			continue
		}
		v, ok := r.Get(old)
		if !ok {
			continue
		}
		out.Days[k] = r.without(old).with(name, v)
	}
	if out.Owner == old {
		out.Owner = name
	}
	return out
}

// DeleteHabit removes name from every day. Days left without any habit are
// removed, as are legacy records owned by name.
func (h History) DeleteHabit(name string) History {
	out := h.Clone()
	for k, r := range out.Days {
		if r.Kind() == KindScalar {
			if out.Owner != "" && out.Owner == name {
				delete(out.Days, k)
			}
			continue
		}
		if _, ok := r.Get(name); ok {
			out.Days[k] = r.without(name)
		}
	}
	if out.Owner == name {
		out.Owner = ""
	}
	out.prune()
	return out
}

func (h History) prune() {
	for k, r := range h.Days {
		if r.Empty() {
			delete(h.Days, k)
		}
	}
}

// MarshalJSON writes the day map only.
func (h History) MarshalJSON() ([]byte, error) {
	days := h.Days
	if days == nil {
		days = map[datekey.Key]Record{}
	}
	return json.Marshal(days)
}

// UnmarshalJSON reads a day map and drops empty records. Unpadded day keys
// are repaired; keys that are not days at all are skipped and listed in
// Dropped.
func (h *History) UnmarshalJSON(b []byte) error {
	var raw map[datekey.Key]Record
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	days := make(map[datekey.Key]Record, len(raw))
	var dropped []string
	for k, r := range raw {
		if k.Valid() {
			days[k] = r
		}
	}
	for k, r := range raw {
		if k.Valid() {
			continue
		}
		fixed, ok := datekey.Canonical(string(k))
		if !ok {
			dropped = append(dropped, string(k))
			continue
		}
		if _, taken := days[fixed]; taken {
			dropped = append(dropped, string(k))
			continue
		}
		days[fixed] = r
	}
	sort.Strings(dropped)
	h.Days = days
	h.Dropped = dropped
	h.prune()
	return nil
}
