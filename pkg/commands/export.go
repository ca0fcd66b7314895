package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/habit/pkg/runner/export"
)

func addExport(topLevel *cobra.Command) {
	format := "json"

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a backup of all habit data to stdout.",
		Example: `
habit export > habits.json
habit export -o yaml
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, _, err := service()
			if err != nil {
				return err
			}
			e := export.Export{Service: svc, Output: format}
			return e.Do(context.Background())
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", "json", "Output format. One of 'yaml' or 'json'.")
	topLevel.AddCommand(cmd)
}
