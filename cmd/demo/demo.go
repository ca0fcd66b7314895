// Command demo fills the configured store with random history so the grid
// and stats have something to show.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tableflip.dev/habit/pkg/app"
	"tableflip.dev/habit/pkg/datekey"
	"tableflip.dev/habit/pkg/store"
)

func main() {
	days := 120
	rate := 0.7

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Seed the habit store with random history.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return seed(context.Background(), days, rate)
		},
	}
	cmd.Flags().IntVar(&days, "days", days, "Days of history to generate.")
	cmd.Flags().Float64Var(&rate, "rate", rate, "Chance a habit is done on a given day.")

	if err := cmd.Execute(); err != nil {
		log.Fatalf("error during command execution: %v", err)
	}
}

func seed(ctx context.Context, days int, rate float64) error {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	p, err := store.Load(nil, logger)
	if err != nil {
		return err
	}
	svc := &app.Service{Documents: p, Logger: logger}

	today := datekey.Day(time.Now())
	start := datekey.AddDays(today, -days+1)
	if _, err := svc.Setup(ctx, app.SetupOptions{
		Start:  string(datekey.Format(start)),
		Habits: []string{"🏋️ Gym", "📚 Read", "🧘 Meditate"},
	}); err != nil {
		return err
	}

	done := 0
	for i := 0; i < days; i++ {
		day := datekey.AddDays(start, i)
		for _, habit := range []string{"1", "2", "3"} {
			v := rand.Float64() < rate
			if _, err := svc.Log(ctx, habit, day, &v); err != nil {
				return err
			}
			if v {
				done++
			}
		}
	}
	fmt.Printf("logged %d days, %d completions\n", days, done)
	return nil
}
