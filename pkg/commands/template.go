package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/storyboard/pkg/commands/options"
	"tableflip.dev/storyboard/pkg/printers"
	"tableflip.dev/storyboard/pkg/runner/create"
	"tableflip.dev/storyboard/pkg/runner/list"
	"tableflip.dev/storyboard/pkg/runner/remove"
	"tableflip.dev/storyboard/pkg/runner/show"
	"tableflip.dev/storyboard/pkg/template"
)

func addNew(topLevel *cobra.Command, e *env) {
	oo := &options.OutputOptions{}
	var description, aspect string

	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create a template with a single intro section.",
		Example: `
storyboard new "Spring promo"
storyboard new Teaser --aspect 1:1 --description "square cut"
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			var ratio template.AspectRatio
			if aspect != "" {
				var err error
				if ratio, err = template.ParseAspectRatio(aspect); err != nil {
					return err
				}
			}
			svc, err := e.service()
			if err != nil {
				return oo.HandleError(err)
			}
			c := create.Create{
				Service:     svc,
				Name:        args[0],
				Description: description,
				Aspect:      ratio,
				Format:      oo.Format(),
			}
			return oo.HandleError(c.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Template description.")
	cmd.Flags().StringVar(&aspect, "aspect", "", fmt.Sprintf("Aspect ratio. One of %v.", template.AllAspectRatios()))
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addList(topLevel *cobra.Command, e *env) {
	oo := &options.OutputOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored templates.",
		Example: `
storyboard list
storyboard list --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := e.service()
			if err != nil {
				return oo.HandleError(err)
			}
			l := list.List{
				Service: svc,
				ShowID:  io.ShowID,
				Format:  oo.Format(),
			}
			return oo.HandleError(l.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)
	options.AddShowIDArgs(cmd, io)
	topLevel.AddCommand(cmd)
}

func addShow(topLevel *cobra.Command, e *env) {
	oo := &options.OutputOptions{}
	io := &options.IDOptions{}
	var timeline bool
	var width int

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a template, its sections and its text.",
		Long: `Print a template. The id may be a unique prefix of the full id.

With --timeline the sections are also drawn as a proportional bar.`,
		Example: `
storyboard show 3f2a
storyboard show 3f2a --timeline --width 80
storyboard show 3f2a --yaml
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: e.templateCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := e.service()
			if err != nil {
				return oo.HandleError(err)
			}
			s := show.Show{
				Service:  svc,
				ID:       args[0],
				ShowID:   io.ShowID,
				Timeline: timeline,
				Width:    width,
				Format:   oo.Format(),
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	cmd.Flags().BoolVar(&timeline, "timeline", false, "Draw the section timeline.")
	cmd.Flags().IntVar(&width, "width", printers.DefaultTimelineWidth, "Timeline width in cells.")
	options.AddOutputArg(cmd, oo)
	options.AddShowIDArgs(cmd, io)
	topLevel.AddCommand(cmd)
}

func addRemove(topLevel *cobra.Command, e *env) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:               "rm <id>",
		Short:             "Delete a stored template.",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: e.templateCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := e.service()
			if err != nil {
				return oo.HandleError(err)
			}
			r := remove.Remove{
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

// templateCompletions offers stored template ids with their names.
func (e *env) templateCompletions(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	if e.cfg == nil {
		if err := e.init(); err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
	}
	svc, err := e.service()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	snaps, err := svc.Templates(context.Background())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	var out []string
	for _, s := range snaps {
		out = append(out, s.Template.ID+"\t"+s.Template.Name)
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
