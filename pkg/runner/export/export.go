// Package export writes a full backup of the habit documents.
package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"tableflip.dev/habit/pkg/app"
)

// Export writes the backup document as json or yaml.
type Export struct {
	Service *app.Service
	Output  string
	// Out defaults to color.Output.
	Out io.Writer
}

func (e *Export) Do(ctx context.Context) error {
	if e.Service == nil {
		return errors.New("can not export, no service")
	}
	out := e.Out
	if out == nil {
		out = color.Output
	}
	doc, err := e.Service.Export(ctx)
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	switch e.Output {
	case "", "json":
		_, err = fmt.Fprintln(out, string(b))
		return err
	case "yaml":
		y, err := ToYAML(b)
		if err != nil {
			return err
		}
		_, err = out.Write(y)
		return err
	}
	return fmt.Errorf("unknown output format %q, expected json or yaml", e.Output)
}

// ToYAML re-encodes a JSON document as block-style YAML, keeping key order.
func ToYAML(b []byte) ([]byte, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(b, &node); err != nil {
		return nil, err
	}
	blockStyle(&node)
	return yaml.Marshal(&node)
}

func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}
