package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/storyboard/pkg/commands/options"
	"tableflip.dev/storyboard/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command, e *env) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about configuration and where templates are stored.",
		Example: `
storyboard info
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := e.service()
			if err != nil {
				return oo.HandleError(err)
			}
			s := info.Info{
				Config:  e.cfg,
				Service: svc,
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
