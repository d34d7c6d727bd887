// Package remove deletes stored templates.
package remove

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/storyboard/pkg/app"
	"tableflip.dev/storyboard/pkg/printers"
)

type Remove struct {
	Service *app.Service
	ID      string
	Format  string
	Out     io.Writer
}

func (r *Remove) Do(ctx context.Context) error {
	id, err := r.Service.Remove(ctx, r.ID)
	if err != nil {
		return err
	}
	out := (&printers.PrettyPrint{Out: r.Out}).Writer()
	if r.Format != "" {
		return app.Encode(out, r.Format, map[string]string{"removed": id})
	}
	_, _ = fmt.Fprintf(out, "removed %s\n", color.New(color.FgHiYellow).Sprint(id))
	return nil
}
