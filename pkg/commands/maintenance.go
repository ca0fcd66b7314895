package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/habit/pkg/app"
	"tableflip.dev/habit/pkg/commands/options"
	"tableflip.dev/habit/pkg/runner/setup"
)

func addMaintenance(topLevel *cobra.Command) {
	addMigrate(topLevel)
	addReset(topLevel)
	addWipe(topLevel)
}

func addMigrate(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Convert single-habit records to the multi-habit format.",
		Example: `
habit migrate
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, _, err := service()
			if err != nil {
				return output.HandleError(err)
			}
			m := setup.Migrate{Service: svc, JSON: output.JSON}
			err = m.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addReset(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset settings to defaults, keeping habits and records.",
		Example: `
habit reset
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, _, err := service()
			if err != nil {
				return output.HandleError(err)
			}
			r := setup.Reset{Service: svc, JSON: output.JSON}
			err = r.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addWipe(topLevel *cobra.Command) {
	confirm := ""

	cmd := &cobra.Command{
		Use:   "wipe",
		Short: "Delete all habit data.",
		Example: `
habit wipe --confirm ` + app.ConfirmPhrase + `
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, _, err := service()
			if err != nil {
				return output.HandleError(err)
			}
			w := setup.Wipe{Service: svc, Confirm: confirm}
			err = w.Do(context.Background())
			return output.HandleError(err)
		},
	}

	cmd.Flags().StringVar(&confirm, "confirm", "", "Type "+app.ConfirmPhrase+" to confirm.")
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
