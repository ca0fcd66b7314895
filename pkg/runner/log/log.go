package log

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/habit/pkg/app"
	"tableflip.dev/habit/pkg/printers"
)

// Log records one habit on one day.
type Log struct {
	Service *app.Service
	Habit   string
	On      time.Time
	// Value nil toggles.
	Value *bool
	JSON  bool

	Printer *printers.PrettyPrint
}

type logOutput struct {
	app.LogResult
	CurrentStreak int `json:"currentStreak"`
}

func (n *Log) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not log, no service")
	}
	pp := n.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{}
	}

	res, err := n.Service.Log(ctx, n.Habit, n.On, n.Value)
	if err != nil {
		return err
	}
	report, err := n.Service.Stats(ctx, res.Habit, 0)
	if err != nil {
		return err
	}
	if n.JSON {
		return pp.JSON(logOutput{LogResult: res, CurrentStreak: report.CurrentStreak})
	}
	pp.Logged(res.Habit, res.Day.String(), res.Done)
	pp.Streak(report.CurrentStreak)
	return nil
}
