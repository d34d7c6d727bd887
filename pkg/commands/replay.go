package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/storyboard/pkg/commands/options"
	"tableflip.dev/storyboard/pkg/runner/replay"
)

func addReplay(topLevel *cobra.Command, e *env) {
	oo := &options.OutputOptions{}
	ido := &options.IDOptions{}
	var file string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "replay <id> -f script.yaml",
		Short: "Apply a script of editor actions, including undo and redo.",
		Long: `Replay opens a template and applies each scripted step as one editor
action. Steps share one session, so undo and redo walk the history built by
the steps before them. If any step is invalid nothing is saved.

Use "-f -" to read the script from stdin.`,
		Example: `
storyboard replay 3f2a -f cut.yaml
storyboard replay 3f2a -f cut.yaml --dry-run
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: e.templateCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			var in io.Reader = cmd.InOrStdin()
			if file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return oo.HandleError(err)
				}
				defer f.Close()
				in = f
			}
			script, err := replay.Parse(in)
			if err != nil {
				return oo.HandleError(err)
			}
			svc, err := e.service()
			if err != nil {
				return oo.HandleError(err)
			}
			r := replay.Replay{
				Service: svc,
				ID:      args[0],
				Script:  script,
				DryRun:  dryRun,
				ShowID:  ido.ShowID,
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Script to replay, or - for stdin.")
	_ = cmd.MarkFlagRequired("file")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the result without saving it.")
	options.AddOutputArg(cmd, oo)
	options.AddShowIDArgs(cmd, ido)
	topLevel.AddCommand(cmd)
}
