// Package datekey converts between local calendar days and their canonical
// YYYY-MM-DD string form.
package datekey

import (
	"fmt"
	"sort"
	"time"
)

// Layout is the canonical day layout. Keys in this layout sort
// lexicographically in chronological order.
const Layout = "2006-01-02"

// Key identifies one local calendar day.
type Key string

// Format returns the key for the calendar day of t, in t's own location.
func Format(t time.Time) Key {
	return Key(t.Format(Layout))
}

// Parse reads a YYYY-MM-DD string and returns local midnight of that day.
func Parse(s string) (time.Time, error) {
	if len(s) != len(Layout) {
		return time.Time{}, fmt.Errorf("datekey: %q is not in YYYY-MM-DD form", s)
	}
	t, err := time.ParseInLocation(Layout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("datekey: %w", err)
	}
	return t, nil
}

// Time is Parse on the key itself.
func (k Key) Time() (time.Time, error) {
	return Parse(string(k))
}

// Valid reports whether k names a real calendar day.
func (k Key) Valid() bool {
	_, err := k.Time()
	return err == nil
}

// Canonical repairs keys written without zero padding, such as 2024-1-5.
func Canonical(s string) (Key, bool) {
	t, err := time.ParseInLocation("2006-1-2", s, time.Local)
	if err != nil {
		return "", false
	}
	return Format(t), true
}

func (k Key) String() string {
	return string(k)
}

// Day truncates t to midnight of its local calendar day.
func Day(t time.Time) time.Time {
	t = t.In(time.Local)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

// Today is Day(now).
func Today(now time.Time) Key {
	return Format(Day(now))
}

// AddDays moves t by n calendar days. n may be negative.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// Between counts calendar days from a to b. It is negative when b is before a.
func Between(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	// Noon UTC keeps the subtraction clear of DST transitions.
	from := time.Date(ay, am, ad, 12, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 12, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Sort orders keys ascending, which is chronological.
func Sort(keys []Key) {
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
}
