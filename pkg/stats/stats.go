// Package stats derives streaks, completion rates and monthly summaries from a
// habit history.
//
// Two streak definitions coexist on purpose. CurrentStreak walks calendar
// days, so a day that was never recorded breaks it. LongestStreak walks
// recorded days only, so unrecorded gaps do not break it, while a recorded day
// without a completion does. LongestStreak is therefore never below
// CurrentStreak.
package stats

import (
	"math"
	"time"

	"tableflip.dev/habit/pkg/datekey"
	"tableflip.dev/habit/pkg/history"
)

// MaxStreakScan bounds how far back CurrentStreak looks. Runs longer than this
// are reported as MaxStreakScan.
const MaxStreakScan = 365

// Summary is the completion tally for one month.
type Summary struct {
	Completed  int    `json:"completed"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"`
	Label      string `json:"label"`
}

// MonthStat is one row of a year breakdown.
type MonthStat struct {
	Month      time.Month `json:"month"`
	Label      string     `json:"label"`
	Completed  int        `json:"completed"`
	Total      int        `json:"total"`
	Percentage int        `json:"percentage"`
}

// HabitStats bundles the numbers shown for one habit.
type HabitStats struct {
	Habit            string  `json:"habit"`
	CurrentStreak    int     `json:"currentStreak"`
	LongestStreak    int     `json:"longestStreak"`
	Rate7            int     `json:"rate7"`
	Rate30           int     `json:"rate30"`
	TotalCompletions int     `json:"totalCompletions"`
	Month            Summary `json:"month"`
}

// CurrentStreak counts consecutive completed calendar days ending today. A
// today with nothing recorded yet does not end a run that reached yesterday;
// an explicit false does.
func CurrentStreak(h history.History, habit string, today time.Time) int {
	day := datekey.Day(today)
	if done, logged := h.Status(datekey.Format(day), habit); !done && !logged {
		day = datekey.AddDays(day, -1)
	}
	streak := 0
	for i := 0; i < MaxStreakScan; i++ {
		if !h.IsCompleted(datekey.Format(day), habit) {
			break
		}
		streak++
		day = datekey.AddDays(day, -1)
	}
	return streak
}

// LongestStreak is the longest run of completions over recorded days in order.
func LongestStreak(h history.History, habit string) int {
	longest, run := 0, 0
	for _, day := range h.Keys() {
		if h.IsCompleted(day, habit) {
			run++
			if run > longest {
				longest = run
			}
			continue
		}
		run = 0
	}
	return longest
}

// CompletionRate is the rounded percentage of completed days among the
// windowDays days ending today.
func CompletionRate(h history.History, habit string, windowDays int, today time.Time) int {
	if windowDays <= 0 {
		return 0
	}
	day := datekey.Day(today)
	completed := 0
	for i := 0; i < windowDays; i++ {
		if h.IsCompleted(datekey.Format(datekey.AddDays(day, -i)), habit) {
			completed++
		}
	}
	return percent(completed, windowDays)
}

// MonthlySummary tallies a month starting at its first recorded day, for any
// habit, and ending at today or the month's last day, whichever is earlier.
// A month with no records reports zeros.
func MonthlySummary(h history.History, habit string, year int, month time.Month, today time.Time) Summary {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	last := time.Date(year, month, datekey.DaysIn(year, month), 0, 0, 0, 0, time.Local)
	summary := Summary{Label: first.Format("January 2006")}

	lo, hi := datekey.Format(first), datekey.Format(last)
	var anchor datekey.Key
	for _, day := range h.Keys() {
		if day >= lo && day <= hi {
			anchor = day
			break
		}
	}
	if anchor == "" {
		return summary
	}

	end := last
	if t := datekey.Day(today); t.Before(end) {
		end = t
	}
	start, err := anchor.Time()
	if err != nil {
		return summary
	}
	for d := start; !d.After(end); d = datekey.AddDays(d, 1) {
		summary.Total++
		if h.IsCompleted(datekey.Format(d), habit) {
			summary.Completed++
		}
	}
	summary.Percentage = percent(summary.Completed, summary.Total)
	return summary
}

// YearBreakdown tallies January through today's month of today's year. Each
// month counts every calendar day up to today.
func YearBreakdown(h history.History, habit string, today time.Time) []MonthStat {
	today = datekey.Day(today)
	year := today.Year()
	out := make([]MonthStat, 0, int(today.Month()))
	for m := time.January; m <= today.Month(); m++ {
		first := time.Date(year, m, 1, 0, 0, 0, 0, time.Local)
		stat := MonthStat{Month: m, Label: first.Format("Jan")}
		for day := 1; day <= datekey.DaysIn(year, m); day++ {
			d := time.Date(year, m, day, 0, 0, 0, 0, time.Local)
			if d.After(today) {
				break
			}
			stat.Total++
			if h.IsCompleted(datekey.Format(d), habit) {
				stat.Completed++
			}
		}
		stat.Percentage = percent(stat.Completed, stat.Total)
		out = append(out, stat)
	}
	return out
}

// TotalCompletions counts every recorded completion of habit.
func TotalCompletions(h history.History, habit string) int {
	n := 0
	for day := range h.Days {
		if h.IsCompleted(day, habit) {
			n++
		}
	}
	return n
}

// Compute gathers the standard numbers for habit.
func Compute(h history.History, habit string, today time.Time) HabitStats {
	return HabitStats{
		Habit:            habit,
		CurrentStreak:    CurrentStreak(h, habit, today),
		LongestStreak:    LongestStreak(h, habit),
		Rate7:            CompletionRate(h, habit, 7, today),
		Rate30:           CompletionRate(h, habit, 30, today),
		TotalCompletions: TotalCompletions(h, habit),
		Month:            MonthlySummary(h, habit, today.Year(), today.Month(), today),
	}
}

func percent(n, d int) int {
	if d <= 0 {
		return 0
	}
	return int(math.Floor(float64(n)*100/float64(d) + 0.5))
}
