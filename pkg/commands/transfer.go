package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/storyboard/pkg/commands/options"
	"tableflip.dev/storyboard/pkg/runner/transfer"
)

func addExport(topLevel *cobra.Command, e *env) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Write a template to stdout as JSON or YAML.",
		Example: `
storyboard export 3f2a > promo.json
storyboard export 3f2a --yaml > promo.yaml
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: e.templateCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := e.service()
			if err != nil {
				return oo.HandleError(err)
			}
			format := oo.Format()
			if format == "" {
				format = "json"
			}
			x := transfer.Export{
				Service: svc,
				ID:      args[0],
				Format:  format,
				Out:     cmd.OutOrStdout(),
			}
			return oo.HandleError(x.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addImport(topLevel *cobra.Command, e *env) {
	oo := &options.OutputOptions{}
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Store a template read from a JSON or YAML file.",
		Long: `Import reads a template document, fills in missing ids and defaults,
and stores it. An existing template with the same id is kept unless
--overwrite is set. Use "-" to read from stdin.`,
		Example: `
storyboard import promo.yaml
storyboard export 3f2a | storyboard import - --overwrite
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			var in io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return oo.HandleError(err)
				}
				defer f.Close()
				in = f
			}
			svc, err := e.service()
			if err != nil {
				return oo.HandleError(err)
			}
			i := transfer.Import{
				Service:   svc,
				In:        in,
				Overwrite: overwrite,
			}
			return oo.HandleError(i.Do(cmd.Context()))
		},
	}

	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace a stored template with the same id.")
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
