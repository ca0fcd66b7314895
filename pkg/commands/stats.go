package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/habit/pkg/commands/options"
	"tableflip.dev/habit/pkg/runner/stats"
)

func addStats(topLevel *cobra.Command) {
	addStatsCmd(topLevel)
	addSummary(topLevel)
	addMonth(topLevel)
	addYear(topLevel)
}

func habitArgsCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) != 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return habitCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
}

func addStatsCmd(topLevel *cobra.Command) {
	ho := &options.HabitOptions{}
	wo := &options.WindowOptions{}

	cmd := &cobra.Command{
		Use:   "stats [habit]",
		Short: "Streaks and completion rates of a habit.",
		Example: `
habit stats
habit stats 📚 Read --last 90d
`,
		Args:              options.HabitArgs(ho),
		ValidArgsFunction: habitArgsCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, _, err := service()
			if err != nil {
				return output.HandleError(err)
			}
			window, label, err := wo.Days()
			if err != nil {
				return output.HandleError(err)
			}
			s := stats.Stats{
				Service:     svc,
				Habit:       ho.Habit,
				Window:      window,
				WindowLabel: label,
				JSON:        output.JSON,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddWindowArgs(cmd, wo)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addSummary(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Today, current streak and 7 day rate of every enabled habit.",
		Example: `
habit summary
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, _, err := service()
			if err != nil {
				return output.HandleError(err)
			}
			s := stats.Summary{
				Service: svc,
				JSON:    output.JSON,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addMonth(topLevel *cobra.Command) {
	ho := &options.HabitOptions{}
	mo := &options.MonthOptions{}

	cmd := &cobra.Command{
		Use:   "month [habit]",
		Short: "Calendar and tally of one month.",
		Example: `
habit month
habit month 2 --month 2024-02
`,
		Args:              options.HabitArgs(ho),
		ValidArgsFunction: habitArgsCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, _, err := service()
			if err != nil {
				return output.HandleError(err)
			}
			year, month, err := mo.Get()
			if err != nil {
				return output.HandleError(err)
			}
			s := stats.Month{
				Service: svc,
				Habit:   ho.Habit,
				Year:    year,
				Month:   month,
				JSON:    output.JSON,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddMonthArgs(cmd, mo)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addYear(topLevel *cobra.Command) {
	ho := &options.HabitOptions{}

	cmd := &cobra.Command{
		Use:   "year [habit]",
		Short: "Month by month completion of this year.",
		Example: `
habit year
`,
		Args:              options.HabitArgs(ho),
		ValidArgsFunction: habitArgsCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, _, err := service()
			if err != nil {
				return output.HandleError(err)
			}
			s := stats.Year{
				Service: svc,
				Habit:   ho.Habit,
				JSON:    output.JSON,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
