package options

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/storyboard/pkg/template"
	"tableflip.dev/storyboard/pkg/timeutil"
)

// SectionOptions carries the section fields a command may set. Empty strings
// mean "leave unchanged".
type SectionOptions struct {
	Type     string
	Name     string
	Duration string
}

func AddSectionArgs(cmd *cobra.Command, o *SectionOptions) {
	cmd.Flags().StringVarP(&o.Type, "type", "t", "",
		fmt.Sprintf("Section type. One of %v.", template.AllSectionTypes()))
	cmd.Flags().StringVarP(&o.Name, "name", "n", "",
		"Section name.")
	cmd.Flags().StringVarP(&o.Duration, "duration", "d", "",
		"Section length, e.g. 3, 1.5s or 1m30s.")
	_ = cmd.RegisterFlagCompletionFunc("type", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		var out []string
		for _, t := range template.AllSectionTypes() {
			out = append(out, string(t))
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	})
}

// SectionType parses --type; unset returns ok false.
func (o *SectionOptions) SectionType() (t template.SectionType, ok bool, err error) {
	if o.Type == "" {
		return "", false, nil
	}
	t, err = template.ParseSectionType(o.Type)
	return t, err == nil, err
}

// Seconds parses --duration; unset returns ok false.
func (o *SectionOptions) Seconds() (sec float64, ok bool, err error) {
	if o.Duration == "" {
		return 0, false, nil
	}
	sec, err = timeutil.ParseSeconds(o.Duration)
	return sec, err == nil, err
}
