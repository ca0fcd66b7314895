package datekey

import (
	"testing"
	"time"
)

func TestFormatZeroPads(t *testing.T) {
	d := time.Date(2024, time.March, 5, 23, 59, 0, 0, time.Local)
	if got := Format(d); got != "2024-03-05" {
		t.Fatalf("expected 2024-03-05, got %s", got)
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	start := time.Date(2023, time.December, 25, 0, 0, 0, 0, time.Local)
	for i := 0; i < 800; i++ {
		d := AddDays(start, i)
		got, err := Parse(string(Format(d)))
		if err != nil {
			t.Fatalf("parse %s: %v", Format(d), err)
		}
		if !got.Equal(Day(d)) {
			t.Fatalf("round trip of %s: expected %v, got %v", Format(d), Day(d), got)
		}
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "2024-1-05", "2024-02-30", "05-01-2024", "2024-01-05T00:00:00"} {
		if _, err := Parse(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestAddDaysCrossesBoundaries(t *testing.T) {
	tests := []struct {
		from string
		n    int
		want Key
	}{
		{"2024-12-31", 1, "2025-01-01"},
		{"2025-01-01", -1, "2024-12-31"},
		{"2024-02-28", 1, "2024-02-29"},
		{"2023-02-28", 1, "2023-03-01"},
		{"2024-03-01", -1, "2024-02-29"},
		{"2024-01-31", 30, "2024-03-01"},
	}
	for _, tt := range tests {
		from, err := Parse(tt.from)
		if err != nil {
			t.Fatalf("parse %s: %v", tt.from, err)
		}
		if got := Format(AddDays(from, tt.n)); got != tt.want {
			t.Fatalf("%s %+d: expected %s, got %s", tt.from, tt.n, tt.want, got)
		}
	}
}

func TestKeyOrderMatchesChronology(t *testing.T) {
	keys := []Key{"2024-10-01", "2023-12-31", "2024-09-30", "2024-01-01"}
	Sort(keys)
	for i := 1; i < len(keys); i++ {
		a, _ := keys[i-1].Time()
		b, _ := keys[i].Time()
		if !a.Before(b) {
			t.Fatalf("expected %s before %s", keys[i-1], keys[i])
		}
	}
}

func TestBetween(t *testing.T) {
	a, _ := Parse("2024-01-01")
	b, _ := Parse("2024-03-01")
	if got := Between(a, b); got != 60 {
		t.Fatalf("expected 60, got %d", got)
	}
	if got := Between(b, a); got != -60 {
		t.Fatalf("expected -60, got %d", got)
	}
	if got := Between(a, a.Add(23*time.Hour)); got != 0 {
		t.Fatalf("expected 0 within one day, got %d", got)
	}
}

func TestDaysIn(t *testing.T) {
	if got := DaysIn(2024, time.February); got != 29 {
		t.Fatalf("expected 29, got %d", got)
	}
	if got := DaysIn(2023, time.February); got != 28 {
		t.Fatalf("expected 28, got %d", got)
	}
	if got := DaysIn(2024, time.December); got != 31 {
		t.Fatalf("expected 31, got %d", got)
	}
}

func TestCanonical(t *testing.T) {
	tests := []struct {
		in   string
		want Key
		ok   bool
	}{
		{"2024-1-5", "2024-01-05", true},
		{"2024-01-05", "2024-01-05", true},
		{"2024-2-30", "", false},
		{"yesterday", "", false},
	}
	for _, tt := range tests {
		got, ok := Canonical(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("Canonical(%q): expected %q %v, got %q %v", tt.in, tt.want, tt.ok, got, ok)
		}
	}
}
