package registry

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"tableflip.dev/habit/pkg/history"
)

var t0 = time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)

func build(t *testing.T, names ...string) Registry {
	t.Helper()
	r := Empty()
	for i, name := range names {
		var err error
		r, err = r.Add(name, t0.Add(time.Duration(i)*time.Minute))
		if err != nil {
			t.Fatalf("add %q: %v", name, err)
		}
	}
	return r
}

func TestAddFirstHabitBecomesCurrent(t *testing.T) {
	r := build(t, "  🏋️ Gym  ")
	if r.CurrentHabit != "🏋️ Gym" {
		t.Fatalf("expected trimmed current habit, got %q", r.CurrentHabit)
	}
	if r.Mode != history.ModeSingle {
		t.Fatalf("expected single mode, got %s", r.Mode)
	}
}

func TestAddSecondHabitSwitchesMode(t *testing.T) {
	r := build(t, "A", "B")
	if r.Mode != history.ModeMultiple {
		t.Fatalf("expected multiple mode, got %s", r.Mode)
	}
	if r.CurrentHabit != "A" {
		t.Fatalf("expected current habit A, got %q", r.CurrentHabit)
	}
}

func TestAddRejectsInvalidAndDuplicate(t *testing.T) {
	r := build(t, "A")
	if _, err := r.Add("   ", t0); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
	got, err := r.Add(" A ", t0)
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
	if diff := cmp.Diff(r, got); diff != "" {
		t.Fatalf("registry changed on failed add (-want +got):\n%s", diff)
	}
}

func TestEmojiNamesAreDistinct(t *testing.T) {
	r := build(t, "🏃 Run", "🏃‍♀️ Run")
	if len(r.Habits) != 2 {
		t.Fatalf("expected 2 habits, got %d", len(r.Habits))
	}
}

func TestRename(t *testing.T) {
	r := build(t, "A", "B")
	out, err := r.Rename("A", "C")
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if out.Has("A") || !out.Has("C") {
		t.Fatalf("expected A renamed to C, got %v", out.Names())
	}
	if out.Habits["C"].Name != "C" {
		t.Fatalf("expected record name updated, got %q", out.Habits["C"].Name)
	}
	if !out.Habits["C"].Created.Equal(t0) {
		t.Fatalf("expected created time preserved")
	}
	if out.CurrentHabit != "C" {
		t.Fatalf("expected current habit to follow rename, got %q", out.CurrentHabit)
	}
}

func TestRenameErrors(t *testing.T) {
	r := build(t, "A", "B")
	if _, err := r.Rename("Z", "C"); !errors.Is(err, ErrUnknownHabit) {
		t.Fatalf("expected ErrUnknownHabit, got %v", err)
	}
	if _, err := r.Rename("A", "B"); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
	if _, err := r.Rename("A", " "); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
	same, err := r.Rename("A", " A ")
	if err != nil {
		t.Fatalf("rename to same name: %v", err)
	}
	if diff := cmp.Diff(r, same); diff != "" {
		t.Fatalf("expected no-op (-want +got):\n%s", diff)
	}
}

func TestDeleteFallsBackAndDerivesMode(t *testing.T) {
	r := build(t, "A", "B")
	out, err := r.Delete("A")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if out.CurrentHabit != "B" {
		t.Fatalf("expected current habit B, got %q", out.CurrentHabit)
	}
	if out.Mode != history.ModeSingle {
		t.Fatalf("expected single mode, got %s", out.Mode)
	}
	out, err = out.Delete("B")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if out.CurrentHabit != "" {
		t.Fatalf("expected no current habit, got %q", out.CurrentHabit)
	}
	if _, err := out.Delete("B"); !errors.Is(err, ErrUnknownHabit) {
		t.Fatalf("expected ErrUnknownHabit, got %v", err)
	}
}

func TestModeCountsEnabledHabitsOnly(t *testing.T) {
	r := build(t, "A", "B")
	out, err := r.SetEnabled("B", false)
	if err != nil {
		t.Fatalf("disable: %v", err)
	}
	if out.Mode != history.ModeSingle {
		t.Fatalf("expected single mode with one enabled habit, got %s", out.Mode)
	}
}

func TestSelect(t *testing.T) {
	r := build(t, "A", "B")
	out, err := r.Select("B")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if out.CurrentHabit != "B" {
		t.Fatalf("expected B, got %q", out.CurrentHabit)
	}
	disabled, _ := r.SetEnabled("B", false)
	if _, err := disabled.Select("B"); !errors.Is(err, ErrHabitDisabled) {
		t.Fatalf("expected ErrHabitDisabled, got %v", err)
	}
	if _, err := r.Select("Z"); !errors.Is(err, ErrUnknownHabit) {
		t.Fatalf("expected ErrUnknownHabit, got %v", err)
	}
}

func TestNormalizeRepairsStaleCurrent(t *testing.T) {
	r := build(t, "A", "B")
	r.CurrentHabit = "gone"
	if got := r.Normalize().CurrentHabit; got != "A" {
		t.Fatalf("expected A, got %q", got)
	}
	r, _ = r.SetEnabled("A", false)
	r.CurrentHabit = "A"
	if got := r.Normalize().CurrentHabit; got != "B" {
		t.Fatalf("expected first enabled habit B, got %q", got)
	}
}

func TestResolve(t *testing.T) {
	r := build(t, "A", "B", "C")
	r, _ = r.SetEnabled("B", false)
	r, _ = r.Select("C")

	tests := []struct {
		param string
		want  string
	}{
		{"", "C"},
		{"1", "A"},
		{"2", "C"},
		{"3", "C"},
		{"A", "A"},
		{"B", "C"},
		{"nope", "C"},
	}
	for _, tt := range tests {
		if got := r.Resolve(tt.param); got != tt.want {
			t.Fatalf("Resolve(%q): expected %q, got %q", tt.param, tt.want, got)
		}
	}
	if got := Empty().Resolve(""); got != DefaultHabitName {
		t.Fatalf("expected default habit, got %q", got)
	}
}

func TestLookup(t *testing.T) {
	r := build(t, "A", "B")
	if got, err := r.Lookup("2"); err != nil || got != "B" {
		t.Fatalf("expected B, got %q %v", got, err)
	}
	if _, err := r.Lookup("C"); !errors.Is(err, ErrUnknownHabit) {
		t.Fatalf("expected ErrUnknownHabit, got %v", err)
	}
}

func TestJSONShape(t *testing.T) {
	raw := `{"mode":"multiple","currentHabit":"A","habits":{"A":{"name":"A","created":"2024-01-01T09:00:00Z","enabled":true},"B":{"name":"B"}},"version":"2.0"}`
	var r Registry
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if err := Validate(r); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !r.Habits["B"].Enabled {
		t.Fatalf("expected missing enabled flag to mean enabled")
	}
	if !r.Habits["A"].Created.Equal(t0) {
		t.Fatalf("expected created %v, got %v", t0, r.Habits["A"].Created)
	}
	b, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var back Registry
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("decode again: %v", err)
	}
	if diff := cmp.Diff(r, back); diff != "" {
		t.Fatalf("document changed (-want +got):\n%s", diff)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		ok   bool
	}{
		{"missing habits", `{"mode":"single","currentHabit":"A"}`, false},
		{"empty habits", `{"mode":"single","habits":{}}`, false},
		{"bad mode", `{"mode":"weekly","habits":{"A":{"name":"A"}}}`, false},
		{"mismatched name", `{"habits":{"A":{"name":"B"}}}`, false},
	}
	for _, tt := range tests {
		var r Registry
		if err := json.Unmarshal([]byte(tt.raw), &r); err != nil {
			t.Fatalf("%s: decode: %v", tt.name, err)
		}
		err := Validate(r)
		if tt.ok && err != nil {
			t.Fatalf("%s: unexpected error %v", tt.name, err)
		}
		if !tt.ok && !errors.Is(err, ErrMalformed) {
			t.Fatalf("%s: expected ErrMalformed, got %v", tt.name, err)
		}
	}
}

func TestResetKeepsHabits(t *testing.T) {
	r := build(t, "A", "B")
	r, _ = r.Select("B")
	r.Version = ""
	out := r.Reset()
	if len(out.Habits) != 2 || out.CurrentHabit != "A" || out.Version != Version {
		t.Fatalf("unexpected reset result %+v", out)
	}
	if got := Empty().Reset(); got.CurrentHabit != DefaultHabitName {
		t.Fatalf("expected defaults for empty registry, got %+v", got)
	}
}
