// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

// OutputOptions selects between the pretty printer and machine output. The
// embedded options carry --json and the JSON error envelope.
type OutputOptions struct {
	base.OutputOptions
	YAML bool
}

func AddOutputArg(cmd *cobra.Command, o *OutputOptions) {
	base.AddOutputArg(cmd, &o.OutputOptions)
	cmd.Flags().BoolVar(&o.YAML, "yaml", false,
		"Output as YAML.")
}

// Format is "json", "yaml" or "" for the pretty printer.
func (o *OutputOptions) Format() string {
	switch {
	case o.JSON:
		return "json"
	case o.YAML:
		return "yaml"
	default:
		return ""
	}
}
