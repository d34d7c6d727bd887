// Package list prints the stored templates.
package list

import (
	"context"
	"io"

	"tableflip.dev/storyboard/pkg/app"
	"tableflip.dev/storyboard/pkg/persist"
	"tableflip.dev/storyboard/pkg/printers"
)

type List struct {
	Service *app.Service
	ShowID  bool
	Format  string
	Out     io.Writer
}

func (l *List) Do(ctx context.Context) error {
	snaps, err := l.Service.Templates(ctx)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: l.ShowID, Out: l.Out}
	if l.Format != "" {
		if snaps == nil {
			snaps = []persist.Snapshot{}
		}
		return app.Encode(pp.Writer(), l.Format, snaps)
	}
	pp.NewLine()
	pp.Catalog(snaps)
	return nil
}
