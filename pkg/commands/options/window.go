package options

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/habit/pkg/timeutil"
)

// WindowOptions sets an extra completion-rate window.
type WindowOptions struct {
	Last string
}

func AddWindowArgs(cmd *cobra.Command, o *WindowOptions) {
	cmd.Flags().StringVar(&o.Last, "last", "",
		`Add a completion rate over a window, example: --last=2w or --last=90d.`)
}

// Days is zero when no window was asked for.
func (o *WindowOptions) Days() (int, string, error) {
	if o.Last == "" {
		return 0, "", nil
	}
	return timeutil.ParseWindow(o.Last)
}

// MonthOptions picks a month.
type MonthOptions struct {
	Month string
}

func AddMonthArgs(cmd *cobra.Command, o *MonthOptions) {
	cmd.Flags().StringVar(&o.Month, "month", "",
		`Month to show, example: --month=2024-02. Defaults to the current month.`)
}

// Get returns a zero month when the flag is empty.
func (o *MonthOptions) Get() (int, time.Month, error) {
	if o.Month == "" {
		return 0, 0, nil
	}
	t, err := time.Parse("2006-01", o.Month)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid --month %q, expected YYYY-MM", o.Month)
	}
	return t.Year(), t.Month(), nil
}
