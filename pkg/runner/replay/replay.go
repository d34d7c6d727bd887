// Package replay drives a stored template through a scripted list of editor
// actions, including undo and redo, and saves the result.
package replay

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/storyboard/pkg/app"
	"tableflip.dev/storyboard/pkg/editor"
	"tableflip.dev/storyboard/pkg/persist"
	"tableflip.dev/storyboard/pkg/printers"
)

type Replay struct {
	Service *app.Service
	ID      string
	Script  Script
	// DryRun prints the outcome without saving it.
	DryRun bool
	ShowID bool
	Out    io.Writer
}

// StepResult records whether a step changed the session.
type StepResult struct {
	Action  string
	Type    editor.ActionType
	Changed bool
}

type Result struct {
	Steps []StepResult
	State editor.State
}

// Run applies the script. A step that cannot be built stops the replay and
// nothing is saved.
func (r *Replay) Run(ctx context.Context) (Result, error) {
	sess, err := r.Service.Open(ctx, r.ID)
	if err != nil {
		return Result{}, err
	}

	res := Result{Steps: make([]StepResult, 0, len(r.Script.Steps))}
	for i, st := range r.Script.Steps {
		if err := ctx.Err(); err != nil {
			sess.Discard()
			return Result{}, err
		}
		a, err := st.ToAction(sess.State())
		if err != nil {
			sess.Discard()
			return Result{}, fmt.Errorf("replay: step %d (%s): %w", i+1, st.Action, err)
		}
		before := sess.Revision()
		sess.Dispatch(a)
		res.Steps = append(res.Steps, StepResult{
			Action:  st.Action,
			Type:    a.Type(),
			Changed: sess.Revision() != before,
		})
	}
	res.State = sess.State()

	if r.DryRun {
		sess.Discard()
		return res, nil
	}
	return res, sess.Close()
}

func (r *Replay) Do(ctx context.Context) error {
	res, err := r.Run(ctx)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: r.ShowID, Out: r.Out}
	out := pp.Writer()

	ok := color.New(color.FgGreen)
	faint := color.New(color.Faint)
	tbl := uitable.New()
	tbl.Separator = "  "
	for i, st := range res.Steps {
		mark := faint.Sprint("·")
		if st.Changed {
			mark = ok.Sprint("✓")
		}
		tbl.AddRow(i+1, mark, st.Action, faint.Sprint(st.Type))
	}
	tbl.RightAlign(0)
	pp.NewLine()
	_, _ = fmt.Fprintln(out, tbl)
	pp.NewLine()

	pp.Template(res.State.Template, persist.Project(res.State).UI)
	h := res.State.History
	_, _ = faint.Fprintf(out, "history: %d back, %d forward\n", len(h.Past), len(h.Future))
	if r.DryRun {
		_, _ = faint.Fprintln(out, "dry run, nothing saved")
	}
	return nil
}
