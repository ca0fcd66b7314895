package stats

import (
	"encoding/json"
	"math/rand"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"tableflip.dev/habit/pkg/datekey"
	"tableflip.dev/habit/pkg/history"
)

func load(t *testing.T, raw string) history.History {
	t.Helper()
	var h history.History
	if err := json.Unmarshal([]byte(raw), &h); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	return h
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := datekey.Parse(s)
	if err != nil {
		t.Fatalf("parse %s: %v", s, err)
	}
	// Afternoon, so nothing depends on the caller passing midnight.
	return d.Add(14 * time.Hour)
}

// completeRun marks habit done for n days ending at end.
func completeRun(h history.History, habit string, end time.Time, n int) history.History {
	for i := 0; i < n; i++ {
		h = h.Set(datekey.Format(datekey.AddDays(end, -i)), habit, history.ModeMultiple, true)
	}
	return h
}

func TestScenario(t *testing.T) {
	h := load(t, `{"2024-01-01": {"A": true}, "2024-01-03": {"A": true}}`)
	today := day(t, "2024-01-03")
	if got := CurrentStreak(h, "A", today); got != 1 {
		t.Fatalf("expected current streak 1, got %d", got)
	}
	// 2024-01-02 was never recorded, so the two logged completions are adjacent.
	if got := LongestStreak(h, "A"); got != 2 {
		t.Fatalf("expected longest streak 2, got %d", got)
	}
}

func TestCurrentStreakZeroWhenTodayAndYesterdayMissing(t *testing.T) {
	h := load(t, `{"2024-01-01": {"A": true}}`)
	if got := CurrentStreak(h, "A", day(t, "2024-01-03")); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestCurrentStreakCountsRunIncludingToday(t *testing.T) {
	today := day(t, "2024-03-02")
	for k := 1; k <= 10; k++ {
		h := completeRun(history.New(), "A", today, k)
		// Day k+1 back is explicitly not done.
		h = h.Set(datekey.Format(datekey.AddDays(today, -k)), "A", history.ModeMultiple, false)
		if got := CurrentStreak(h, "A", today); got != k {
			t.Fatalf("run of %d: expected %d, got %d", k, k, got)
		}
	}
}

func TestCurrentStreakUnloggedTodayKeepsYesterdaysRun(t *testing.T) {
	today := day(t, "2024-03-10")
	h := completeRun(history.New(), "A", datekey.AddDays(today, -1), 4)
	if got := CurrentStreak(h, "A", today); got != 4 {
		t.Fatalf("expected 4, got %d", got)
	}
	// Another habit logged today does not count as logging A.
	h = h.Set(datekey.Format(today), "B", history.ModeMultiple, true)
	if got := CurrentStreak(h, "A", today); got != 4 {
		t.Fatalf("expected 4 with another habit logged, got %d", got)
	}
	h = h.Set(datekey.Format(today), "A", history.ModeMultiple, false)
	if got := CurrentStreak(h, "A", today); got != 0 {
		t.Fatalf("expected explicit false today to end the streak, got %d", got)
	}
}

func TestCurrentStreakCrossesYearBoundary(t *testing.T) {
	today := day(t, "2025-01-02")
	h := completeRun(history.New(), "A", today, 5)
	if got := CurrentStreak(h, "A", today); got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
}

func TestCurrentStreakSaturates(t *testing.T) {
	today := day(t, "2024-06-01")
	h := completeRun(history.New(), "A", today, 400)
	if got := CurrentStreak(h, "A", today); got != MaxStreakScan {
		t.Fatalf("expected streak to saturate at %d, got %d", MaxStreakScan, got)
	}
	if got := LongestStreak(h, "A"); got != 400 {
		t.Fatalf("expected longest streak 400, got %d", got)
	}
}

func TestCurrentStreakLegacyScalars(t *testing.T) {
	h := load(t, `{"2024-01-01": true, "2024-01-02": true}`).WithOwner("Gym")
	if got := CurrentStreak(h, "Gym", day(t, "2024-01-02")); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
	if got := CurrentStreak(h, "Other", day(t, "2024-01-02")); got != 0 {
		t.Fatalf("expected 0 for a habit that does not own the legacy days, got %d", got)
	}
}

// The two streak definitions disagree on calendar gaps. Both are kept.
func TestStreakAsymmetryOnCalendarGaps(t *testing.T) {
	h := load(t, `{"2024-01-01": {"A": true}, "2024-01-02": {"A": true}, "2024-01-05": {"A": true}}`)
	if got := LongestStreak(h, "A"); got != 3 {
		t.Fatalf("expected longest streak to ignore unrecorded days, got %d", got)
	}
	if got := CurrentStreak(h, "A", day(t, "2024-01-05")); got != 1 {
		t.Fatalf("expected current streak to stop at unrecorded days, got %d", got)
	}
}

func TestLongestStreakBreaksOnRecordedMiss(t *testing.T) {
	h := load(t, `{
		"2024-01-01": {"A": true},
		"2024-01-02": {"A": true},
		"2024-01-03": {"B": true},
		"2024-01-04": {"A": true},
		"2024-01-05": {"A": false},
		"2024-01-06": {"A": true}
	}`)
	if got := LongestStreak(h, "A"); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
	if got := LongestStreak(history.New(), "A"); got != 0 {
		t.Fatalf("expected 0 for empty history, got %d", got)
	}
}

func TestLongestNeverBelowCurrent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	today := day(t, "2024-02-29")
	for trial := 0; trial < 200; trial++ {
		h := history.New()
		for i := 0; i < 60; i++ {
			switch rng.Intn(4) {
			case 0:
				continue
			case 1:
				h = h.Set(datekey.Format(datekey.AddDays(today, -i)), "B", history.ModeMultiple, true)
			default:
				h = h.Set(datekey.Format(datekey.AddDays(today, -i)), "A", history.ModeMultiple, rng.Intn(3) > 0)
			}
		}
		cur, longest := CurrentStreak(h, "A", today), LongestStreak(h, "A")
		if longest < cur {
			t.Fatalf("trial %d: longest %d below current %d", trial, longest, cur)
		}
	}
}

func TestCompletionRate(t *testing.T) {
	today := day(t, "2024-01-10")
	h := history.New()
	for _, d := range []string{"2024-01-10", "2024-01-07", "2024-01-04", "2024-01-03", "2023-12-31"} {
		h = h.Set(datekey.Key(d), "A", history.ModeMultiple, true)
	}
	if got := CompletionRate(h, "A", 7, today); got != 43 {
		t.Fatalf("expected 43, got %d", got)
	}
	if got := CompletionRate(h, "A", 0, today); got != 0 {
		t.Fatalf("expected 0 for empty window, got %d", got)
	}
	if got := CompletionRate(h, "A", 1, today); got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}
	if got := CompletionRate(h, "A", 30, today); got != 17 {
		t.Fatalf("expected 17 (5/30), got %d", got)
	}
}

func TestCompletionRateRoundsHalfUp(t *testing.T) {
	today := day(t, "2024-01-08")
	h := completeRun(history.New(), "A", today, 1)
	if got := CompletionRate(h, "A", 8, today); got != 13 {
		t.Fatalf("expected 12.5 to round to 13, got %d", got)
	}
}

func TestMonthlySummaryAnchorsAtFirstRecord(t *testing.T) {
	h := load(t, `{
		"2024-02-10": {"B": true},
		"2024-02-11": {"A": true},
		"2024-02-14": {"A": true},
		"2024-03-01": {"A": true}
	}`)
	got := MonthlySummary(h, "A", 2024, time.February, day(t, "2024-02-15"))
	want := Summary{Completed: 2, Total: 6, Percentage: 33, Label: "February 2024"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected summary (-want +got):\n%s", diff)
	}
}

func TestMonthlySummaryPastMonthEndsAtMonthEnd(t *testing.T) {
	h := load(t, `{"2024-02-20": {"A": true}, "2024-02-29": {"A": true}}`)
	got := MonthlySummary(h, "A", 2024, time.February, day(t, "2024-05-01"))
	want := Summary{Completed: 2, Total: 10, Percentage: 20, Label: "February 2024"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected summary (-want +got):\n%s", diff)
	}
}

func TestMonthlySummaryEmptyMonth(t *testing.T) {
	h := load(t, `{"2024-01-31": {"A": true}, "2024-03-01": {"A": true}}`)
	got := MonthlySummary(h, "A", 2024, time.February, day(t, "2024-03-05"))
	want := Summary{Label: "February 2024"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected summary (-want +got):\n%s", diff)
	}
}

func TestMonthlySummaryFutureMonth(t *testing.T) {
	h := load(t, `{"2024-04-10": {"A": true}}`)
	got := MonthlySummary(h, "A", 2024, time.April, day(t, "2024-03-05"))
	if got.Total != 0 || got.Percentage != 0 {
		t.Fatalf("expected no days counted before today, got %+v", got)
	}
}

func TestYearBreakdown(t *testing.T) {
	h := load(t, `{"2024-01-01": {"A": true}, "2024-02-01": {"A": true}, "2024-02-02": {"A": true}}`)
	got := YearBreakdown(h, "A", day(t, "2024-02-04"))
	want := []MonthStat{
		{Month: time.January, Label: "Jan", Completed: 1, Total: 31, Percentage: 3},
		{Month: time.February, Label: "Feb", Completed: 2, Total: 4, Percentage: 50},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected breakdown (-want +got):\n%s", diff)
	}
}

func TestCompute(t *testing.T) {
	h := load(t, `{"2024-01-01": {"A": true}, "2024-01-02": {"A": true}, "2024-01-03": {"A": false}}`)
	got := Compute(h, "A", day(t, "2024-01-03"))
	if got.CurrentStreak != 0 || got.LongestStreak != 2 || got.TotalCompletions != 2 {
		t.Fatalf("unexpected stats %+v", got)
	}
	if got.Rate7 != 29 {
		t.Fatalf("expected 7-day rate 29, got %d", got.Rate7)
	}
	if got.Month.Total != 3 || got.Month.Completed != 2 {
		t.Fatalf("unexpected month summary %+v", got.Month)
	}
}
