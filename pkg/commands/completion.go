package commands

import (
	"context"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/habit/pkg/app"
	"tableflip.dev/habit/pkg/store"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(habit completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(habit completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

func habitCompletions(toComplete string) []string {
	p, err := store.Load(nil, logger)
	if err != nil {
		return nil
	}
	svc := &app.Service{Documents: p}
	snap, err := svc.Load(context.Background())
	if err != nil {
		return nil
	}
	var hs []string
	for _, name := range snap.Registry.Enabled() {
		if strings.HasPrefix(name, toComplete) {
			hs = append(hs, strconv.Quote(name))
		}
	}
	return hs
}
