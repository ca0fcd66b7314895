package commands

import (
	"context"
	"os"
	"os/signal"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/habit/pkg/commands/options"
	"tableflip.dev/habit/pkg/runner/grid"
)

func addGrid(topLevel *cobra.Command) {
	ho := &options.HabitOptions{}
	days := 0
	watch := false

	cmd := &cobra.Command{
		Use:   "grid [habit]",
		Short: "Show the calendar grid of a habit.",
		Long: base.Wrap80(`Shows one square per day from the tracking start, seven days per column.
The habit may be a name or a 1-based index into the enabled habits; anything
else shows the current habit.`),
		Example: `
habit grid
habit grid 2 --days 90
habit grid --watch
`,
		Args: options.HabitArgs(ho),
		ValidArgsFunction: habitArgsCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, cfg, err := service()
			if err != nil {
				return output.HandleError(err)
			}
			if days <= 0 {
				days = cfg.GridDays()
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			g := grid.Grid{
				Service: svc,
				Habit:   ho.Habit,
				Days:    days,
				Watch:   watch,
				JSON:    output.JSON,
			}
			err = g.Do(ctx)
			return output.HandleError(err)
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "Number of days to show (default from config, 365).")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Redraw when the history changes.")
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
