package printers

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// PrettyPrint renders habit views for a terminal.
type PrettyPrint struct {
	// Out defaults to color.Output.
	Out io.Writer
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)
	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " day")
	default:
		_, _ = c.Fprintln(pp.out(), " days")
	}
}

// Streak prints the flame line shown under a grid.
func (pp *PrettyPrint) Streak(days int) {
	if days == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprintln(pp.out(), "no current streak")
		return
	}
	s := color.New(color.Bold, color.FgHiYellow)
	unit := "days"
	if days == 1 {
		unit = "day"
	}
	_, _ = s.Fprintf(pp.out(), "🔥 %d %s\n", days, unit)
}

// Logged confirms a log edit.
func (pp *PrettyPrint) Logged(habit, day string, done bool) {
	mark := color.New(color.Faint).Sprint("○ not done")
	if done {
		mark = color.New(color.FgGreen, color.Bold).Sprint("● done")
	}
	_, _ = fmt.Fprintf(pp.out(), "%s %s %s\n", day, habit, mark)
}

// Habits lists habit names, marking the current one and disabled ones.
func (pp *PrettyPrint) Habits(names []string, current string, enabled map[string]bool) {
	if len(names) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}
	b := color.New(color.Bold)
	f := color.New(color.Faint)
	idx := 0
	for _, name := range names {
		if !enabled[name] {
			_, _ = f.Fprintf(pp.out(), "  -  %s (disabled)\n", name)
			continue
		}
		idx++
		if name == current {
			_, _ = b.Fprintf(pp.out(), "%2d * %s\n", idx, name)
			continue
		}
		_, _ = fmt.Fprintf(pp.out(), "%2d   %s\n", idx, name)
	}
	pp.NewLine()
}

// Raw writes s unformatted.
func (pp *PrettyPrint) Raw(s string) {
	_, _ = fmt.Fprint(pp.out(), s)
}
