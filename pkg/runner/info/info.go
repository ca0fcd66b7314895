package info

import (
	"context"
	"fmt"
	"os"
	"strings"

	"tableflip.dev/habit/pkg/app"
	"tableflip.dev/habit/pkg/printers"
	"tableflip.dev/habit/pkg/store"
)

type Info struct {
	Config  store.Config
	Service *app.Service
	JSON    bool

	Printer *printers.PrettyPrint
}

type infoOutput struct {
	Path       string   `json:"path"`
	ConfigFile string   `json:"configFile,omitempty"`
	Documents  []string `json:"documents"`
	app.Info
}

func (n *Info) Do(ctx context.Context) error {
	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}
	if n.Service == nil || n.Service.Documents == nil {
		return fmt.Errorf("Failed to create persistence object.")
	}
	pp := n.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{}
	}

	details, err := n.Service.Info(ctx)
	if err != nil {
		return err
	}
	out := infoOutput{
		Path:       n.Config.BasePath(),
		ConfigFile: store.ConfigFile(),
		Documents:  n.Service.Documents.Keys(ctx),
		Info:       details,
	}
	if n.JSON {
		return pp.JSON(out)
	}

	if override := os.Getenv("HABIT_CONFIG_PATH"); override != "" {
		pp.Raw(fmt.Sprintln("HABIT_CONFIG_PATH found on env, using ", override))
	} else {
		pp.Raw(fmt.Sprintln("HABIT_CONFIG_PATH env var not set"))
	}
	if out.ConfigFile != "" {
		pp.Raw(fmt.Sprintln("Config file: ", out.ConfigFile))
	}
	pp.Raw(fmt.Sprintln("Config.path: ", out.Path))

	pp.Raw("Documents:\n")
	if len(out.Documents) == 0 {
		pp.Raw("  no documents\n")
	}
	for _, k := range out.Documents {
		pp.Raw(fmt.Sprintf("  %s\n", k))
	}

	pp.Raw(fmt.Sprintf("Mode: %s\n", details.Mode))
	pp.Raw(fmt.Sprintf("Current habit: %s\n", details.CurrentHabit))
	pp.Raw(fmt.Sprintf("Habits: %s\n", strings.Join(details.Habits, ", ")))
	start := string(details.Start)
	if !details.Configured {
		start += " (not set up, run habit setup)"
	}
	pp.Raw(fmt.Sprintf("Tracking since: %s\n", start))
	pp.Raw(fmt.Sprintf("Recorded days: %d\n", details.Days))
	if details.Legacy {
		pp.Raw("Legacy single-habit records present, run habit migrate\n")
	}
	return nil
}
