package history

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Kind tags which variant a Record holds.
type Kind uint8

const (
	// KindScalar is the legacy single-habit form: one boolean per day.
	KindScalar Kind = iota
	// KindMulti maps habit names to booleans for the day.
	KindMulti
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindMulti:
		return "multi"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Record is the completion state of one day. The zero value is Scalar(false).
type Record struct {
	kind   Kind
	done   bool
	habits map[string]bool
}

// Scalar returns a legacy record.
func Scalar(done bool) Record {
	return Record{kind: KindScalar, done: done}
}

// Multi returns a per-habit record. The map is copied.
func Multi(habits map[string]bool) Record {
	cp := make(map[string]bool, len(habits))
	for k, v := range habits {
		cp[k] = v
	}
	return Record{kind: KindMulti, habits: cp}
}

// Kind reports the variant.
func (r Record) Kind() Kind {
	return r.kind
}

// Done is the scalar value. It is false for multi records.
func (r Record) Done() bool {
	return r.kind == KindScalar && r.done
}

// Get returns the value recorded for habit and whether one was recorded.
// Scalar records hold no habit keys.
func (r Record) Get(habit string) (bool, bool) {
	if r.kind != KindMulti {
		return false, false
	}
	v, ok := r.habits[habit]
	return v, ok
}

// Habits returns a copy of the per-habit map, nil for scalar records.
func (r Record) Habits() map[string]bool {
	if r.kind != KindMulti {
		return nil
	}
	cp := make(map[string]bool, len(r.habits))
	for k, v := range r.habits {
		cp[k] = v
	}
	return cp
}

// Names lists the habit keys of a multi record in sorted order.
func (r Record) Names() []string {
	names := make([]string, 0, len(r.habits))
	for k := range r.habits {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Empty reports a multi record without keys. Such records are never stored.
func (r Record) Empty() bool {
	return r.kind == KindMulti && len(r.habits) == 0
}

// Equal compares variant and contents.
func (r Record) Equal(o Record) bool {
	if r.kind != o.kind {
		return false
	}
	if r.kind == KindScalar {
		return r.done == o.done
	}
	if len(r.habits) != len(o.habits) {
		return false
	}
	for k, v := range r.habits {
		if ov, ok := o.habits[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// Lift converts a record to the multi form. A scalar becomes {owner: value};
// without an owner the scalar has nobody to belong to and is dropped.
func (r Record) Lift(owner string) Record {
	if r.kind == KindMulti {
		return Multi(r.habits)
	}
	if owner == "" {
		return Multi(nil)
	}
	return Multi(map[string]bool{owner: r.done})
}

func (r Record) with(habit string, value bool) Record {
	m := r.Habits()
	if m == nil {
		m = make(map[string]bool, 1)
	}
	m[habit] = value
	return Record{kind: KindMulti, habits: m}
}

func (r Record) without(habit string) Record {
	m := r.Habits()
	delete(m, habit)
	return Record{kind: KindMulti, habits: m}
}

// MarshalJSON writes a boolean or an object of booleans.
func (r Record) MarshalJSON() ([]byte, error) {
	if r.kind == KindScalar {
		return json.Marshal(r.done)
	}
	m := r.habits
	if m == nil {
		m = map[string]bool{}
	}
	return json.Marshal(m)
}

// UnmarshalJSON accepts a boolean or an object of booleans.
func (r *Record) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 {
		return fmt.Errorf("history: empty record")
	}
	switch trimmed[0] {
	case 't', 'f':
		var v bool
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return fmt.Errorf("history: decode scalar record: %w", err)
		}
		*r = Scalar(v)
		return nil
	case '{':
		var m map[string]bool
		if err := json.Unmarshal(trimmed, &m); err != nil {
			return fmt.Errorf("history: decode habit record: %w", err)
		}
		*r = Multi(m)
		return nil
	default:
		return fmt.Errorf("history: record must be a boolean or an object, got %s", trimmed)
	}
}
