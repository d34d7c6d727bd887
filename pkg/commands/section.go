package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/storyboard/pkg/commands/options"
	"tableflip.dev/storyboard/pkg/runner/section"
)

func addSection(topLevel *cobra.Command, e *env) {
	cmd := &cobra.Command{
		Use:     "section",
		Aliases: []string{"sec"},
		Short:   "Add, change, reorder and remove sections.",
		Long: `Edit the sections of a template.

A section reference is a section id, a unique id prefix, or a 1-based
position such as "#2". With no reference the section that was selected when
the template was last saved is used.`,
	}

	for _, op := range []struct {
		op    section.Op
		use   string
		short string
		args  cobra.PositionalArgs
	}{
		{section.OpAdd, "add <id>", "Append a section, or insert it with --position.", cobra.ExactArgs(1)},
		{section.OpUpdate, "update <id> [section]", "Change a section's name, type or duration.", cobra.RangeArgs(1, 2)},
		{section.OpRemove, "rm <id> [section]", "Remove a section.", cobra.RangeArgs(1, 2)},
		{section.OpMove, "move <id> [section] --position N", "Move a section to a 1-based position.", cobra.RangeArgs(1, 2)},
		{section.OpDuplicate, "dup <id> [section]", "Copy a section, inserting it after the original.", cobra.RangeArgs(1, 2)},
	} {
		cmd.AddCommand(sectionCommand(e, op.op, op.use, op.short, op.args))
	}

	topLevel.AddCommand(cmd)
}

func sectionCommand(e *env, op section.Op, use, short string, args cobra.PositionalArgs) *cobra.Command {
	oo := &options.OutputOptions{}
	io := &options.IDOptions{}
	so := &options.SectionOptions{}
	var position int

	cmd := &cobra.Command{
		Use:               use,
		Short:             short,
		Args:              args,
		ValidArgsFunction: e.templateCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			n := section.Section{
				ID:       args[0],
				Op:       op,
				Position: position,
				ShowID:   io.ShowID,
			}
			if len(args) > 1 {
				n.Section = args[1]
			}
			if typ, ok, err := so.SectionType(); err != nil {
				return oo.HandleError(err)
			} else if ok {
				n.Type = &typ
			}
			if sec, ok, err := so.Seconds(); err != nil {
				return oo.HandleError(err)
			} else if ok {
				n.Duration = &sec
			}
			if cmd.Flags().Changed("name") {
				n.Name = &so.Name
			}

			svc, err := e.service()
			if err != nil {
				return oo.HandleError(err)
			}
			n.Service = svc
			return oo.HandleError(n.Do(cmd.Context()))
		},
	}

	switch op {
	case section.OpAdd, section.OpUpdate:
		options.AddSectionArgs(cmd, so)
	}
	switch op {
	case section.OpAdd, section.OpMove:
		cmd.Flags().IntVarP(&position, "position", "p", 0, "1-based position of the section.")
	}
	if op == section.OpAdd {
		cmd.Example = `
storyboard section add 3f2a --type hook --name "Stop scrolling" --duration 2.5s
storyboard section add 3f2a -t callToAction -p 1
`
	}
	options.AddOutputArg(cmd, oo)
	options.AddShowIDArgs(cmd, io)
	return cmd
}
