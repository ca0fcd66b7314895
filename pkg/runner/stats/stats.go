// Package stats prints streaks, completion rates and tallies.
package stats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tableflip.dev/habit/pkg/app"
	"tableflip.dev/habit/pkg/printers"
)

var errNoService = errors.New("can not compute stats, no service")

func printer(pp *printers.PrettyPrint) *printers.PrettyPrint {
	if pp == nil {
		return &printers.PrettyPrint{}
	}
	return pp
}

// Stats prints the numbers for one habit.
type Stats struct {
	Service *app.Service
	Habit   string
	// Window adds a completion rate over that many days when positive.
	Window      int
	WindowLabel string
	JSON        bool

	Printer *printers.PrettyPrint
}

func (s *Stats) Do(ctx context.Context) error {
	if s.Service == nil {
		return errNoService
	}
	pp := printer(s.Printer)
	report, err := s.Service.Stats(ctx, s.Habit, s.Window)
	if err != nil {
		return err
	}
	if s.JSON {
		return pp.JSON(report)
	}
	var extra []printers.StatsRow
	if report.Window > 0 {
		label := s.WindowLabel
		if label == "" {
			label = fmt.Sprintf("%dd", report.Window)
		}
		extra = append(extra, printers.StatsRow{
			Label: "Last " + label,
			Value: fmt.Sprintf("%d%%", report.WindowRate),
		})
	}
	pp.NewLine()
	pp.Stats(report.Habit, report.HabitStats, extra...)
	return nil
}

// Summary prints every enabled habit.
type Summary struct {
	Service *app.Service
	JSON    bool

	Printer *printers.PrettyPrint
}

func (s *Summary) Do(ctx context.Context) error {
	if s.Service == nil {
		return errNoService
	}
	pp := printer(s.Printer)
	rows, err := s.Service.Summary(ctx)
	if err != nil {
		return err
	}
	if s.JSON {
		return pp.JSON(rows)
	}
	lines := make([]printers.SummaryLine, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, printers.SummaryLine{
			Habit:     r.Habit,
			Current:   r.Current,
			DoneToday: r.DoneToday,
			Streak:    r.CurrentStreak,
			Rate7:     r.Rate7,
		})
	}
	pp.NewLine()
	pp.Title("Today")
	pp.Summary(lines)
	return nil
}

// Month prints one month as a calendar plus its tally.
type Month struct {
	Service *app.Service
	Habit   string
	Year    int
	Month   time.Month
	JSON    bool

	Printer *printers.PrettyPrint
}

func (m *Month) Do(ctx context.Context) error {
	if m.Service == nil {
		return errNoService
	}
	pp := printer(m.Printer)
	view, err := m.Service.Month(ctx, m.Habit, m.Year, m.Month)
	if err != nil {
		return err
	}
	if m.JSON {
		return pp.JSON(view)
	}
	pp.NewLine()
	pp.Title(view.Habit)
	pp.PrintMonthCount(view.First, view.Count)
	pp.Month(view.Summary)
	return nil
}

// Year prints the month by month breakdown of the current year.
type Year struct {
	Service *app.Service
	Habit   string
	JSON    bool

	Printer *printers.PrettyPrint
}

func (y *Year) Do(ctx context.Context) error {
	if y.Service == nil {
		return errNoService
	}
	pp := printer(y.Printer)
	habit, months, err := y.Service.Year(ctx, y.Habit)
	if err != nil {
		return err
	}
	if y.JSON {
		return pp.JSON(map[string]interface{}{"habit": habit, "months": months})
	}
	pp.NewLine()
	pp.Year(habit, months)
	return nil
}
