package commands

import (
	"context"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/habit/pkg/app"
	"tableflip.dev/habit/pkg/commands/options"
	"tableflip.dev/habit/pkg/runner/setup"
)

func addSetup(topLevel *cobra.Command) {
	so := app.SetupOptions{}

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Choose when tracking starts and which habits to track.",
		Long: base.Wrap80(`Setup writes a fresh habit config and tracking start date. Recorded days are
kept. Up to five habits can be given; with none the default habit is used.`),
		Example: `
habit setup --start year
habit setup --start 2024-03-01 --habit "🏋️ Gym" --habit "📚 Read"
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, _, err := service()
			if err != nil {
				return output.HandleError(err)
			}
			s := setup.Setup{
				Service: svc,
				Options: so,
				JSON:    output.JSON,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	cmd.Flags().StringVar(&so.Start, "start", "today", "When tracking starts: today, year, month or YYYY-MM-DD.")
	cmd.Flags().StringArrayVar(&so.Habits, "habit", nil, "Habit to track, repeat for more than one.")
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
