package options

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/habit/pkg/datekey"
)

const (
	layoutISOShort = "1/2"
)

// OnOptions picks the day a log applies to.
type OnOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a day, example: --on="2024-02-28", --on="2/28" or --on=yesterday.`)
}

// GetOn resolves the flag against now. An empty flag means today.
func (o *OnOptions) GetOn(now time.Time) (time.Time, error) {
	today := datekey.Day(now)
	switch strings.ToLower(strings.TrimSpace(o.OnString)) {
	case "", "today":
		return today, nil
	case "yesterday":
		return datekey.AddDays(today, -1), nil
	}
	if t, err := datekey.Parse(o.OnString); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(layoutISOShort, o.OnString, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --on %q, expected YYYY-MM-DD or M/D", o.OnString)
	}
	// Let the year be the same.
	t = time.Date(today.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
	// Logs look back, so 12/30 typed on 1/2 means last year.
	if t.After(today) {
		t = t.AddDate(-1, 0, 0)
	}
	return t, nil
}
