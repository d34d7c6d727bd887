package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/storyboard/pkg/commands/options"
	"tableflip.dev/storyboard/pkg/runner/text"
)

func addText(topLevel *cobra.Command, e *env) {
	cmd := &cobra.Command{
		Use:   "text",
		Short: "Add, change and remove text elements.",
	}

	cmd.AddCommand(textCommand(e, text.OpAdd, "add <id> <text...>", "Add a text element to a section.", cobra.MinimumNArgs(2)))
	cmd.AddCommand(textCommand(e, text.OpUpdate, "update <id> [text...]", "Change the text or position of an element.", cobra.MinimumNArgs(1)))
	cmd.AddCommand(textCommand(e, text.OpRemove, "rm <id>", "Remove an element.", cobra.ExactArgs(1)))

	topLevel.AddCommand(cmd)
}

func textCommand(e *env, op text.Op, use, short string, args cobra.PositionalArgs) *cobra.Command {
	oo := &options.OutputOptions{}
	var sectionRef, elementRef string
	var x, y float64

	cmd := &cobra.Command{
		Use:               use,
		Short:             short,
		Args:              args,
		ValidArgsFunction: e.templateCompletions,
		Example: `
storyboard text add 3f2a --section "#2" Stop scrolling
storyboard text update 3f2a --element 9c1 --y 80
storyboard text rm 3f2a --section "#2" --element 9c1
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			n := text.Text{
				ID:      args[0],
				Op:      op,
				Section: sectionRef,
				Element: elementRef,
				Content: strings.Join(args[1:], " "),
			}
			if cmd.Flags().Changed("x") {
				n.X = &x
			}
			if cmd.Flags().Changed("y") {
				n.Y = &y
			}
			svc, err := e.service()
			if err != nil {
				return oo.HandleError(err)
			}
			n.Service = svc
			return oo.HandleError(n.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVarP(&sectionRef, "section", "s", "", "Section id, id prefix or #position; defaults to the selected section.")
	if op != text.OpAdd {
		cmd.Flags().StringVarP(&elementRef, "element", "e", "", "Element id or id prefix; defaults to the selected element.")
	}
	if op != text.OpRemove {
		cmd.Flags().Float64Var(&x, "x", 0, "Horizontal position in percent of the frame.")
		cmd.Flags().Float64Var(&y, "y", 0, "Vertical position in percent of the frame.")
	}
	options.AddOutputArg(cmd, oo)
	return cmd
}
