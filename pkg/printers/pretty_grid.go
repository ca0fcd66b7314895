package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/habit/pkg/datekey"
	"tableflip.dev/habit/pkg/grid"
)

// Grid symbols.
const (
	CellDone = "■"
	CellMiss = "□"
)

// Grid prints cells column by column, seven rows per column, with a month
// label above each column that starts a month.
func (pp *PrettyPrint) Grid(cells []grid.Cell) {
	out := pp.out()
	if len(cells) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(out, " nothing to show yet\n\n")
		return
	}

	cols := grid.Columns(cells)
	pp.monthHeader(cells, cols)

	done := color.New(color.FgGreen)
	miss := color.New(color.Faint)

	rows := make([][]string, grid.Rows)
	for r := range rows {
		rows[r] = make([]string, cols)
		for c := range rows[r] {
			rows[r][c] = " "
		}
	}
	for _, cell := range cells {
		mark := miss.Sprint(CellMiss)
		if cell.Completed {
			mark = done.Sprint(CellDone)
		}
		rows[cell.Row()][cell.Column()] = mark
	}
	for _, row := range rows {
		_, _ = fmt.Fprintln(out, strings.Join(row, " "))
	}
}

func (pp *PrettyPrint) monthHeader(cells []grid.Cell, cols int) {
	header := make([]byte, cols*2)
	for i := range header {
		header[i] = ' '
	}
	lastEnd := -1
	for _, cell := range cells {
		t, err := cell.Key.Time()
		if err != nil || (t.Day() != 1 && cell.Offset != 0) {
			continue
		}
		pos := cell.Column() * 2
		label := t.Format("Jan")
		if pos <= lastEnd || pos+len(label) > len(header) {
			continue
		}
		copy(header[pos:], label)
		lastEnd = pos + len(label)
	}
	f := color.New(color.Faint)
	_, _ = f.Fprintln(pp.out(), strings.TrimRight(string(header), " "))
}

// GridLegend prints the span the grid covers.
func (pp *PrettyPrint) GridLegend(start, today datekey.Key, completed int) {
	f := color.New(color.Faint)
	_, _ = f.Fprintf(pp.out(), "%s … %s  %s done  %s missed  %d completed\n", start, today, CellDone, CellMiss, completed)
}
