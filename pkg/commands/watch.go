package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tableflip.dev/storyboard/pkg/commands/options"
	"tableflip.dev/storyboard/pkg/runner/watch"
)

func addWatch(topLevel *cobra.Command, e *env) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print a line whenever a stored template changes.",
		Example: `
storyboard watch
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			svc, err := e.service()
			if err != nil {
				return oo.HandleError(err)
			}
			w := watch.Watch{Service: svc}
			return oo.HandleError(w.Do(ctx))
		},
	}

	topLevel.AddCommand(cmd)
}
