// Package grid projects a habit history onto the ordered day cells of the
// tracking calendar.
package grid

import (
	"time"

	"tableflip.dev/habit/pkg/datekey"
	"tableflip.dev/habit/pkg/history"
)

const (
	// DefaultDays is the size of a full grid.
	DefaultDays = 365
	// Rows is the number of cells per column when laid out by week.
	Rows = 7
)

// Cell is one day of the grid.
type Cell struct {
	Offset    int         `json:"offset"`
	Key       datekey.Key `json:"date"`
	Completed bool        `json:"completed"`
}

// Column is the week column the cell falls into.
func (c Cell) Column() int {
	return c.Offset / Rows
}

// Row is the cell's position within its column.
func (c Cell) Row() int {
	return c.Offset % Rows
}

// Project emits one cell per day from initDate, up to totalDays cells, and
// never a day after today.
func Project(h history.History, habit string, initDate, today time.Time, totalDays int) []Cell {
	start := datekey.Day(initDate)
	end := datekey.Day(today)
	n := totalDays
	if span := datekey.Between(start, end) + 1; span < n {
		n = span
	}
	if n <= 0 {
		return []Cell{}
	}
	cells := make([]Cell, 0, n)
	for i := 0; i < totalDays; i++ {
		d := datekey.AddDays(start, i)
		if d.After(end) {
			break
		}
		key := datekey.Format(d)
		cells = append(cells, Cell{Offset: i, Key: key, Completed: h.IsCompleted(key, habit)})
	}
	return cells
}

// Columns is the number of week columns needed for cells.
func Columns(cells []Cell) int {
	if len(cells) == 0 {
		return 0
	}
	return cells[len(cells)-1].Column() + 1
}
