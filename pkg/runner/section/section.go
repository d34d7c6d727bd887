// Package section edits the sections of a stored template.
package section

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/storyboard/pkg/app"
	"tableflip.dev/storyboard/pkg/editor"
	"tableflip.dev/storyboard/pkg/persist"
	"tableflip.dev/storyboard/pkg/printers"
	"tableflip.dev/storyboard/pkg/template"
)

// Op names a section edit.
type Op string

const (
	OpAdd       Op = "add"
	OpUpdate    Op = "update"
	OpRemove    Op = "rm"
	OpMove      Op = "move"
	OpDuplicate Op = "dup"
)

var errNoChange = errors.New("section: nothing to update, set --name, --type or --duration")

// Section applies one Op to the template ID and prints the result. Section
// is a reference as understood by app.SectionRef; empty means the section
// selected when the template was last saved.
type Section struct {
	Service *app.Service
	ID      string
	Op      Op
	Section string

	Type     *template.SectionType
	Name     *string
	Duration *float64
	// Position is the 1-based target for add and move; zero appends on add.
	Position int

	ShowID bool
	Out    io.Writer
}

func (n *Section) Do(ctx context.Context) error {
	state, err := n.Service.Edit(ctx, n.ID, n.apply)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	pp.NewLine()
	pp.Template(state.Template, persist.Project(state).UI)
	return nil
}

func (n *Section) apply(s *app.Session) error {
	if n.Duration != nil && *n.Duration < 0 {
		return fmt.Errorf("section: duration must not be negative, got %v", *n.Duration)
	}
	if n.Op == OpAdd {
		typ := template.SectionBody
		if n.Type != nil {
			typ = *n.Type
		}
		name := ""
		if n.Name != nil {
			name = *n.Name
		}
		dur := template.DefaultSectionDuration
		if n.Duration != nil {
			dur = *n.Duration
		}
		st := s.AddSection(typ, name, dur)
		if n.Position > 0 {
			s.MoveSection(st.UI.SelectedSectionID, n.Position-1)
		}
		return nil
	}

	st := s.State()
	id, err := app.SectionRef(st.Template, n.Section, st.UI.SelectedSectionID)
	if err != nil {
		return err
	}
	switch n.Op {
	case OpUpdate:
		if n.Type == nil && n.Name == nil && n.Duration == nil {
			return errNoChange
		}
		s.UpdateSection(id, editor.SectionPatch{Name: n.Name, Type: n.Type, Duration: n.Duration})
	case OpRemove:
		s.RemoveSection(id)
	case OpMove:
		if n.Position < 1 {
			return fmt.Errorf("section: move needs a position from 1 to %d", len(st.Template.Sections))
		}
		s.MoveSection(id, n.Position-1)
	case OpDuplicate:
		s.DuplicateSection(id)
	default:
		return fmt.Errorf("section: unknown operation %q", n.Op)
	}
	return nil
}
