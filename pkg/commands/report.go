package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/storyboard/pkg/commands/options"
	"tableflip.dev/storyboard/pkg/runner/report"
)

func addReport(topLevel *cobra.Command, e *env) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "report <id>",
		Short: "Break a template's running time down by section type.",
		Example: `
storyboard report 3f2a
storyboard report 3f2a --json
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: e.templateCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := e.service()
			if err != nil {
				return oo.HandleError(err)
			}
			r := report.Report{
				Service: svc,
				ID:      args[0],
				Format:  oo.Format(),
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
