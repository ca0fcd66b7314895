// Package key prints the legend for the symbols the grid and tables use.
package key

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/habit/pkg/printers"
)

// Key prints a symbol legend.
type Key struct {
	// Out defaults to color.Output.
	Out io.Writer
}

// Do renders the legend.
func (k *Key) Do(_ context.Context) error {
	out := k.Out
	if out == nil {
		out = color.Output
	}
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Symbol"), bold.Sprint("Meaning"))
	tbl.AddRow(color.New(color.FgGreen).Sprint(printers.CellDone), "done that day")
	tbl.AddRow(color.New(color.Faint).Sprint(printers.CellMiss), "not done, or nothing logged")
	tbl.AddRow("🔥", "current streak in days")
	tbl.AddRow("*", "current habit")
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(out, "")
	_, _ = fmt.Fprintln(out, tbl)
	_, _ = fmt.Fprintln(out, "")
	return nil
}
