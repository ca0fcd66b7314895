// Package grid renders the calendar grid and optionally redraws it when the
// stored history changes.
package grid

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"tableflip.dev/habit/pkg/app"
	"tableflip.dev/habit/pkg/printers"
	"tableflip.dev/habit/pkg/store"
)

const clearScreen = "\033[H\033[2J"

// Grid prints the grid for one habit.
type Grid struct {
	Service *app.Service
	Habit   string
	Days    int
	Watch   bool
	JSON    bool

	Printer *printers.PrettyPrint
}

func (g *Grid) Do(ctx context.Context) error {
	if g.Service == nil {
		return errors.New("can not draw grid, no service")
	}
	if g.Printer == nil {
		g.Printer = &printers.PrettyPrint{}
	}
	if err := g.render(ctx); err != nil {
		return err
	}
	if !g.Watch {
		return nil
	}

	events, err := g.Service.Watch(ctx)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if ev.Type == store.EventDocumentChanged && ev.Key == store.InitKey {
				continue
			}
			if g.Service.Logger != nil {
				g.Service.Logger.Debug("redrawing grid", zap.String("key", ev.Key))
			}
			if !g.JSON {
				g.Printer.Raw(clearScreen)
			}
			if err := g.render(ctx); err != nil {
				return err
			}
		}
	}
}

func (g *Grid) render(ctx context.Context) error {
	view, err := g.Service.Grid(ctx, g.Habit, g.Days)
	if err != nil {
		return err
	}
	if g.JSON {
		return g.Printer.JSON(view)
	}
	completed := 0
	for _, c := range view.Cells {
		if c.Completed {
			completed++
		}
	}
	g.Printer.NewLine()
	g.Printer.TitleWithCount(view.Habit, len(view.Cells))
	g.Printer.Grid(view.Cells)
	g.Printer.GridLegend(view.Start, view.Today, completed)
	g.Printer.Streak(view.CurrentStreak)
	if g.Watch {
		g.Printer.Raw("watching for changes, ctrl-c to stop\n")
	}
	return nil
}
