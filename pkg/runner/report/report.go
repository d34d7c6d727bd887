// Package report prints the per-type timing breakdown of a template.
package report

import (
	"context"
	"io"

	"tableflip.dev/storyboard/pkg/app"
	"tableflip.dev/storyboard/pkg/printers"
)

type Report struct {
	Service *app.Service
	ID      string
	Format  string
	Out     io.Writer
}

func (r *Report) Do(ctx context.Context) error {
	res, err := r.Service.Report(ctx, r.ID)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: r.Out}
	if r.Format != "" {
		return app.Encode(pp.Writer(), r.Format, res)
	}
	pp.NewLine()
	pp.Report(res)
	return nil
}
