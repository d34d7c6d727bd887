// Package transfer moves templates in and out of local storage as JSON or
// YAML documents.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/storyboard/pkg/app"
	"tableflip.dev/storyboard/pkg/printers"
)

// Export writes a stored template as a document.
type Export struct {
	Service *app.Service
	ID      string
	// Format is "json" (the default) or "yaml".
	Format string
	Out    io.Writer
}

func (e *Export) Do(ctx context.Context) error {
	out := (&printers.PrettyPrint{Out: e.Out}).Writer()
	return e.Service.Export(ctx, e.ID, e.Format, out)
}

// Import stores a template document read from In.
type Import struct {
	Service   *app.Service
	In        io.Reader
	Overwrite bool
	Out       io.Writer
}

func (i *Import) Do(ctx context.Context) error {
	if i.In == nil {
		return errors.New("transfer: nothing to import")
	}
	t, err := i.Service.Import(ctx, i.In, i.Overwrite)
	if err != nil {
		return err
	}
	out := (&printers.PrettyPrint{Out: i.Out}).Writer()
	_, _ = fmt.Fprintf(out, "imported %s %s (%d sections)\n",
		color.New(color.FgHiYellow).Sprint(t.ID), t.Name, len(t.Sections))
	return nil
}
