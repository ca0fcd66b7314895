package commands

import (
	"fmt"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"tableflip.dev/habit/pkg/app"
	"tableflip.dev/habit/pkg/commands/options"
	"tableflip.dev/habit/pkg/store"
)

var (
	output  = &options.OutputOptions{}
	verbose bool
	logger  = zap.NewNop()
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "habit",
		Short: base.Wrap80("Track daily habits, streaks and completion rates on the command line."),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewProductionConfig()
			config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			if verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			l, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr.")
	cmd.PersistentFlags().String("path", "", "Directory holding the habit documents (default ~/.habit.db).")
	_ = viper.BindPFlag("path", cmd.PersistentFlags().Lookup("path"))

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addSetup(topLevel)
	addHabits(topLevel)
	addLog(topLevel)
	addGrid(topLevel)
	addStats(topLevel)
	addMaintenance(topLevel)
	addExport(topLevel)
	addKey(topLevel)
	addInfo(topLevel)
	addVersion(topLevel)
	addUpgrade(topLevel)
	addCompletions(topLevel)
}

// service wires the configured document store into an app.Service.
func service() (*app.Service, store.Config, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	docs, err := store.Load(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return &app.Service{Documents: docs, Logger: logger}, cfg, nil
}
