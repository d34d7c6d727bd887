// Package text adds and edits text elements.
package text

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/storyboard/pkg/app"
	"tableflip.dev/storyboard/pkg/editor"
	"tableflip.dev/storyboard/pkg/printers"
	"tableflip.dev/storyboard/pkg/template"
)

type Op string

const (
	OpAdd    Op = "add"
	OpUpdate Op = "update"
	OpRemove Op = "rm"
)

// Text edits a text element of the template ID. Section and Element are
// references as understood by app.SectionRef and app.ElementRef.
type Text struct {
	Service *app.Service
	ID      string
	Op      Op
	Section string
	Element string
	Content string
	// X and Y place the element in percent of the frame; nil keeps the
	// default centre on add and the current position on update.
	X, Y *float64
	Out  io.Writer
}

func (n *Text) Do(ctx context.Context) error {
	var msg string
	_, err := n.Service.Edit(ctx, n.ID, func(s *app.Session) error {
		var err error
		msg, err = n.apply(s)
		return err
	})
	if err != nil {
		return err
	}
	out := (&printers.PrettyPrint{Out: n.Out}).Writer()
	_, _ = fmt.Fprintln(out, msg)
	return nil
}

func (n *Text) apply(s *app.Session) (string, error) {
	st := s.State()
	secID, err := app.SectionRef(st.Template, n.Section, st.UI.SelectedSectionID)
	if err != nil {
		return "", err
	}
	y := color.New(color.FgHiYellow)

	if n.Op == OpAdd {
		if strings.TrimSpace(n.Content) == "" {
			return "", errors.New("text: content is required")
		}
		var pos *template.Position
		if n.X != nil || n.Y != nil {
			p := template.NewText("", nil).Position
			if n.X != nil {
				p.X = *n.X
			}
			if n.Y != nil {
				p.Y = *n.Y
			}
			pos = &p
		}
		st = s.AddTextElement(secID, n.Content, pos)
		return fmt.Sprintf("added text %s", y.Sprint(st.UI.SelectedElementID)), nil
	}

	elID, err := app.ElementRef(st.Template, secID, n.Element, st.UI.SelectedElementID)
	if err != nil {
		return "", err
	}
	ref := editor.ElementRef{SectionID: secID, ElementID: elID}
	switch n.Op {
	case OpUpdate:
		patch := editor.ElementPatch{}
		if n.Content != "" {
			patch.Content = &n.Content
		}
		if n.X != nil || n.Y != nil {
			el, err := s.Element(ref)
			if err != nil {
				return "", err
			}
			p := el.Position
			if n.X != nil {
				p.X = *n.X
			}
			if n.Y != nil {
				p.Y = *n.Y
			}
			patch.Position = &p
		}
		if patch.Content == nil && patch.Position == nil {
			return "", errors.New("text: nothing to update, pass new text or --x/--y")
		}
		s.UpdateElement(ref, patch)
		return fmt.Sprintf("updated %s", y.Sprint(elID)), nil
	case OpRemove:
		s.RemoveElement(ref)
		return fmt.Sprintf("removed %s", y.Sprint(elID)), nil
	default:
		return "", fmt.Errorf("text: unknown operation %q", n.Op)
	}
}
