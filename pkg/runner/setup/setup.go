// Package setup runs first-time setup and the maintenance commands.
package setup

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/habit/pkg/app"
	"tableflip.dev/habit/pkg/printers"
)

var errNoService = errors.New("can not run, no service")

// Setup configures the tracker.
type Setup struct {
	Service *app.Service
	Options app.SetupOptions
	JSON    bool

	Printer *printers.PrettyPrint
}

func (s *Setup) Do(ctx context.Context) error {
	if s.Service == nil {
		return errNoService
	}
	pp := printer(s.Printer)
	snap, err := s.Service.Setup(ctx, s.Options)
	if err != nil {
		return err
	}
	if s.JSON {
		return pp.JSON(map[string]interface{}{"config": snap.Registry, "init": snap.Window})
	}
	enabled := make(map[string]bool, len(snap.Registry.Habits))
	for name, h := range snap.Registry.Habits {
		enabled[name] = h.Enabled
	}
	pp.Title(fmt.Sprintf("Tracking since %s", snap.Window.StartDay().Format("January 2, 2006")))
	pp.Habits(snap.Registry.Names(), snap.Registry.CurrentHabit, enabled)
	return nil
}

// Migrate converts legacy records.
type Migrate struct {
	Service *app.Service
	JSON    bool

	Printer *printers.PrettyPrint
}

func (m *Migrate) Do(ctx context.Context) error {
	if m.Service == nil {
		return errNoService
	}
	pp := printer(m.Printer)
	migrated, err := m.Service.Migrate(ctx)
	if err != nil {
		return err
	}
	if m.JSON {
		return pp.JSON(map[string]bool{"migrated": migrated})
	}
	if migrated {
		pp.Raw("legacy records migrated\n")
	} else {
		pp.Raw("nothing to migrate\n")
	}
	return nil
}

// Reset restores default settings.
type Reset struct {
	Service *app.Service
	JSON    bool

	Printer *printers.PrettyPrint
}

func (r *Reset) Do(ctx context.Context) error {
	if r.Service == nil {
		return errNoService
	}
	pp := printer(r.Printer)
	reg, err := r.Service.Reset(ctx)
	if err != nil {
		return err
	}
	if r.JSON {
		return pp.JSON(reg)
	}
	pp.Raw(fmt.Sprintf("settings reset, current habit %s\n", reg.CurrentHabit))
	return nil
}

// Wipe erases everything.
type Wipe struct {
	Service *app.Service
	Confirm string

	Printer *printers.PrettyPrint
}

func (w *Wipe) Do(ctx context.Context) error {
	if w.Service == nil {
		return errNoService
	}
	if err := w.Service.Wipe(ctx, w.Confirm); err != nil {
		return err
	}
	printer(w.Printer).Raw("all habit data deleted\n")
	return nil
}

func printer(pp *printers.PrettyPrint) *printers.PrettyPrint {
	if pp == nil {
		return &printers.PrettyPrint{}
	}
	return pp
}
