package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/habit/pkg/commands/options"
	"tableflip.dev/habit/pkg/runner/habits"
)

func addHabits(topLevel *cobra.Command) {
	addHabitAction(topLevel, habits.List, "list", "List habits.", "habit list")
	addHabitAction(topLevel, habits.Add, "add", "Add a habit.", "habit add 📚 Read")
	addHabitAction(topLevel, habits.Delete, "delete", "Delete a habit and everything recorded for it.", "habit delete 2")
	addHabitAction(topLevel, habits.Enable, "enable", "Enable a habit.", "habit enable 📚 Read")
	addHabitAction(topLevel, habits.Disable, "disable", "Disable a habit, keeping its records.", "habit disable 📚 Read")
	addHabitAction(topLevel, habits.Select, "select", "Make a habit the current one.", "habit select 2")
	addRename(topLevel)
}

// addHabitAction registers a command whose args name one habit, possibly
// with spaces.
func addHabitAction(topLevel *cobra.Command, action habits.Action, use, short, example string) {
	ho := &options.HabitOptions{}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Example: `
` + example + `
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if action == habits.List {
				return cobra.NoArgs(cmd, args)
			}
			if len(args) < 1 {
				return errors.New("requires a habit")
			}
			return options.HabitArgs(ho)(cmd, args)
		},
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if action == habits.Add || action == habits.List || len(args) != 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return habitCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, _, err := service()
			if err != nil {
				return output.HandleError(err)
			}
			var names []string
			if ho.Habit != "" {
				names = []string{ho.Habit}
			}
			h := habits.Habits{
				Service: svc,
				Action:  action,
				Names:   names,
				JSON:    output.JSON,
			}
			err = h.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addRename(topLevel *cobra.Command) {
	ho := &options.HabitOptions{}
	to := ""

	cmd := &cobra.Command{
		Use:   "rename",
		Short: "Rename a habit, keeping its records.",
		Example: `
habit rename "🏋️ Gym" --to "🏋️ Lift"
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a habit")
			}
			return options.HabitArgs(ho)(cmd, args)
		},
		ValidArgsFunction: habitArgsCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, _, err := service()
			if err != nil {
				return output.HandleError(err)
			}
			h := habits.Habits{
				Service: svc,
				Action:  habits.Rename,
				Names:   []string{ho.Habit},
				To:      to,
				JSON:    output.JSON,
			}
			err = h.Do(context.Background())
			return output.HandleError(err)
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "New name.")
	_ = cmd.MarkFlagRequired("to")
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
