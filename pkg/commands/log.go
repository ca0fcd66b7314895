package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/habit/pkg/commands/options"
	"tableflip.dev/habit/pkg/runner/log"
)

func addLog(topLevel *cobra.Command) {
	ho := &options.HabitOptions{}
	oo := &options.OnOptions{}
	var done, undone bool

	cmd := &cobra.Command{
		Use:   "log [habit]",
		Short: "Toggle a habit for today or another day.",
		Example: `
habit log
habit log 2 --on yesterday
habit log 📚 Read --on 2024-02-28 --done
`,
		Args: options.HabitArgs(ho),
		ValidArgsFunction: habitArgsCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, _, err := service()
			if err != nil {
				return output.HandleError(err)
			}

			on, err := oo.GetOn(time.Now())
			if err != nil {
				return output.HandleError(err)
			}

			var value *bool
			switch {
			case done:
				value = &done
			case undone:
				v := false
				value = &v
			}

			s := log.Log{
				Service: svc,
				Habit:   ho.Habit,
				On:      on,
				Value:   value,
				JSON:    output.JSON,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddOnArgs(cmd, oo)
	cmd.Flags().BoolVar(&done, "done", false, "Mark the habit done instead of toggling.")
	cmd.Flags().BoolVar(&undone, "undone", false, "Mark the habit not done instead of toggling.")
	cmd.MarkFlagsMutuallyExclusive("done", "undone")
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
