package options

import (
	"strings"

	"github.com/spf13/cobra"
)

// HabitOptions holds a habit parameter taken from positional args: a name,
// possibly with spaces, or a 1-based index.
type HabitOptions struct {
	Habit string
}

// HabitArgs joins the args into the habit parameter. No args keeps the
// parameter empty, which selects the current habit.
func HabitArgs(o *HabitOptions) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		o.Habit = strings.Join(args, " ")
		return nil
	}
}
