package printers

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/habit/pkg/stats"
)

// StatsRow is one labelled value of the stats table.
type StatsRow struct {
	Label string
	Value string
}

// Stats prints the numbers for one habit.
func (pp *PrettyPrint) Stats(habit string, hs stats.HabitStats, extra ...StatsRow) {
	pp.Title(habit)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("Current streak", days(hs.CurrentStreak))
	tbl.AddRow("Longest streak", days(hs.LongestStreak))
	tbl.AddRow("Last 7 days", fmt.Sprintf("%d%%", hs.Rate7))
	tbl.AddRow("Last 30 days", fmt.Sprintf("%d%%", hs.Rate30))
	for _, row := range extra {
		tbl.AddRow(row.Label, row.Value)
	}
	tbl.AddRow("Total completions", hs.TotalCompletions)
	tbl.AddRow(hs.Month.Label, fmt.Sprintf("%d/%d (%d%%)", hs.Month.Completed, hs.Month.Total, hs.Month.Percentage))
	tbl.RightAlign(1)

	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// SummaryLine is one habit in the all-habits summary.
type SummaryLine struct {
	Habit     string
	Current   bool
	DoneToday bool
	Streak    int
	Rate7     int
}

// Summary prints one line per habit.
func (pp *PrettyPrint) Summary(lines []SummaryLine) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("", bold.Sprint("Habit"), bold.Sprint("Today"), bold.Sprint("Streak"), bold.Sprint("7 days"))
	for _, l := range lines {
		marker := " "
		if l.Current {
			marker = "*"
		}
		today := faint.Sprint(CellMiss)
		if l.DoneToday {
			today = green.Sprint(CellDone)
		}
		tbl.AddRow(marker, l.Habit, today, days(l.Streak), fmt.Sprintf("%d%%", l.Rate7))
	}
	tbl.RightAlign(3)
	tbl.RightAlign(4)

	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Month prints a month tally.
func (pp *PrettyPrint) Month(s stats.Summary) {
	_, _ = fmt.Fprintf(pp.out(), "%s: %d/%d days (%d%%)\n", s.Label, s.Completed, s.Total, s.Percentage)
}

// Year prints the per-month breakdown.
func (pp *PrettyPrint) Year(habit string, months []stats.MonthStat) {
	pp.Title(habit)

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, m := range months {
		tbl.AddRow(m.Label, fmt.Sprintf("%d/%d", m.Completed, m.Total), fmt.Sprintf("%d%%", m.Percentage), bar(m.Percentage))
	}
	tbl.RightAlign(1)
	tbl.RightAlign(2)

	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// bar draws a ten-step percentage bar.
func bar(pct int) string {
	filled := (pct + 5) / 10
	if filled > 10 {
		filled = 10
	}
	if filled < 0 {
		filled = 0
	}
	g := color.New(color.FgGreen)
	f := color.New(color.Faint)
	out := ""
	for i := 0; i < 10; i++ {
		if i < filled {
			out += g.Sprint("█")
		} else {
			out += f.Sprint("░")
		}
	}
	return out
}
