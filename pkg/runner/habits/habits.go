// Package habits runs the commands that edit the habit config.
package habits

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/habit/pkg/app"
	"tableflip.dev/habit/pkg/printers"
	"tableflip.dev/habit/pkg/registry"
)

// Action names the edit to run.
type Action int

const (
	List Action = iota
	Add
	Rename
	Delete
	Enable
	Disable
	Select
)

// Habits edits the habit config and prints the resulting list.
type Habits struct {
	Service *app.Service
	Action  Action
	Names   []string
	// To is the new name for Rename.
	To   string
	JSON bool

	Printer *printers.PrettyPrint
}

func (h *Habits) Do(ctx context.Context) error {
	if h.Service == nil {
		return errors.New("can not edit habits, no service")
	}
	pp := h.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{}
	}

	reg, err := h.run(ctx)
	if err != nil {
		return err
	}
	if h.JSON {
		return pp.JSON(reg)
	}
	enabled := make(map[string]bool, len(reg.Habits))
	for name, habit := range reg.Habits {
		enabled[name] = habit.Enabled
	}
	pp.Title(fmt.Sprintf("Habits, %s mode", reg.Mode))
	pp.Habits(reg.Names(), reg.CurrentHabit, enabled)
	return nil
}

func (h *Habits) run(ctx context.Context) (registry.Registry, error) {
	if h.Action != List && len(h.Names) == 0 {
		return registry.Registry{}, errors.New("requires a habit")
	}
	switch h.Action {
	case Add:
		return h.Service.AddHabits(ctx, h.Names...)
	case Rename:
		return h.Service.RenameHabit(ctx, h.Names[0], h.To)
	case Delete:
		return h.Service.DeleteHabits(ctx, h.Names...)
	case Enable:
		return h.Service.SetEnabled(ctx, true, h.Names...)
	case Disable:
		return h.Service.SetEnabled(ctx, false, h.Names...)
	case Select:
		return h.Service.Select(ctx, h.Names[0])
	}
	snap, err := h.Service.Load(ctx)
	return snap.Registry, err
}
