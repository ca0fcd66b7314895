package app

import (
	"context"
	"time"

	"tableflip.dev/habit/pkg/datekey"
	"tableflip.dev/habit/pkg/grid"
	"tableflip.dev/habit/pkg/history"
	"tableflip.dev/habit/pkg/registry"
	"tableflip.dev/habit/pkg/stats"
	"tableflip.dev/habit/pkg/tracking"
)

// StatsReport is the statistics view for one habit.
type StatsReport struct {
	stats.HabitStats
	// Window is the custom window in days, zero when none was asked for.
	Window     int `json:"window,omitempty"`
	WindowRate int `json:"windowRate,omitempty"`
}

// Stats computes the standard numbers for the habit named by param. A
// positive window adds a completion rate over that many days.
func (s *Service) Stats(ctx context.Context, param string, window int) (StatsReport, error) {
	snap, err := s.Load(ctx)
	if err != nil {
		return StatsReport{}, err
	}
	name, err := resolve(snap.Registry, param)
	if err != nil {
		return StatsReport{}, err
	}
	today := s.now()
	report := StatsReport{HabitStats: stats.Compute(snap.History, name, today)}
	if window > 0 {
		report.Window = window
		report.WindowRate = stats.CompletionRate(snap.History, name, window, today)
	}
	return report, nil
}

// SummaryRow is one line of the all-habits summary.
type SummaryRow struct {
	Habit         string `json:"habit"`
	Current       bool   `json:"current"`
	DoneToday     bool   `json:"doneToday"`
	CurrentStreak int    `json:"currentStreak"`
	Rate7         int    `json:"rate7"`
}

// Summary reports every enabled habit.
func (s *Service) Summary(ctx context.Context) ([]SummaryRow, error) {
	snap, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	today := s.now()
	key := datekey.Today(today)
	current := snap.Registry.Resolve("")
	names := snap.Registry.Enabled()
	rows := make([]SummaryRow, 0, len(names))
	for _, name := range names {
		rows = append(rows, SummaryRow{
			Habit:         name,
			Current:       name == current,
			DoneToday:     snap.History.IsCompleted(key, name),
			CurrentStreak: stats.CurrentStreak(snap.History, name, today),
			Rate7:         stats.CompletionRate(snap.History, name, 7, today),
		})
	}
	return rows, nil
}

// MonthView is one month of one habit.
type MonthView struct {
	Habit   string        `json:"habit"`
	First   time.Time     `json:"first"`
	Summary stats.Summary `json:"summary"`
	// Count holds 1 for each completed day of the month, 0 otherwise.
	Count []int `json:"count"`
}

// Month tallies one month for the habit named by param. A zero month means
// the current one.
func (s *Service) Month(ctx context.Context, param string, year int, month time.Month) (MonthView, error) {
	snap, err := s.Load(ctx)
	if err != nil {
		return MonthView{}, err
	}
	name, err := resolve(snap.Registry, param)
	if err != nil {
		return MonthView{}, err
	}
	today := s.now()
	if month == 0 {
		year, month = today.Year(), today.Month()
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	count := make([]int, datekey.DaysIn(year, month))
	for i := range count {
		if snap.History.IsCompleted(datekey.Format(datekey.AddDays(first, i)), name) {
			count[i] = 1
		}
	}
	return MonthView{
		Habit:   name,
		First:   first,
		Summary: stats.MonthlySummary(snap.History, name, year, month, today),
		Count:   count,
	}, nil
}

// Year breaks the current year down by month.
func (s *Service) Year(ctx context.Context, param string) (string, []stats.MonthStat, error) {
	snap, err := s.Load(ctx)
	if err != nil {
		return "", nil, err
	}
	name, err := resolve(snap.Registry, param)
	if err != nil {
		return "", nil, err
	}
	return name, stats.YearBreakdown(snap.History, name, s.now()), nil
}

// GridView is a projected grid plus the numbers shown beside it.
type GridView struct {
	Habit         string      `json:"habit"`
	Start         datekey.Key `json:"start"`
	Today         datekey.Key `json:"today"`
	CurrentStreak int         `json:"currentStreak"`
	Cells         []grid.Cell `json:"cells"`
}

// Grid projects the habit named by param. Habit parameters follow the widget
// rules: an unknown parameter falls back to the current habit.
func (s *Service) Grid(ctx context.Context, param string, days int) (GridView, error) {
	snap, err := s.Load(ctx)
	if err != nil {
		return GridView{}, err
	}
	if days <= 0 {
		days = grid.DefaultDays
	}
	name := snap.Registry.Resolve(param)
	today := s.now()
	start := snap.Window.StartDay()
	return GridView{
		Habit:         name,
		Start:         datekey.Format(start),
		Today:         datekey.Today(today),
		CurrentStreak: stats.CurrentStreak(snap.History, name, today),
		Cells:         grid.Project(snap.History, name, start, today, days),
	}, nil
}

// Export is the full backup document.
type Export struct {
	History    history.History   `json:"history"`
	Config     registry.Registry `json:"config"`
	Init       *tracking.Window  `json:"init,omitempty"`
	ExportDate time.Time         `json:"exportDate"`
	Version    string            `json:"version"`
}

// Export bundles every document.
func (s *Service) Export(ctx context.Context) (Export, error) {
	snap, err := s.Load(ctx)
	if err != nil {
		return Export{}, err
	}
	out := Export{
		History:    snap.History,
		Config:     snap.Registry,
		ExportDate: s.now().UTC(),
		Version:    registry.Version,
	}
	if snap.HasWindow {
		w := snap.Window
		out.Init = &w
	}
	return out, nil
}

// Info describes the stored state.
type Info struct {
	Mode         history.Mode `json:"mode"`
	CurrentHabit string       `json:"currentHabit"`
	Habits       []string     `json:"habits"`
	Enabled      []string     `json:"enabled"`
	Start        datekey.Key  `json:"start"`
	Configured   bool         `json:"configured"`
	Days         int          `json:"days"`
	Legacy       bool         `json:"legacy"`
}

// Info summarizes the stored documents.
func (s *Service) Info(ctx context.Context) (Info, error) {
	snap, err := s.Load(ctx)
	if err != nil {
		return Info{}, err
	}
	return Info{
		Mode:         snap.ToggleMode(),
		CurrentHabit: snap.Registry.Resolve(""),
		Habits:       snap.Registry.Names(),
		Enabled:      snap.Registry.Enabled(),
		Start:        datekey.Format(snap.Window.StartDay()),
		Configured:   snap.Window.Configured(),
		Days:         snap.History.Len(),
		Legacy:       snap.History.HasScalars(),
	}, nil
}
