// Package show prints one stored template.
package show

import (
	"context"
	"io"

	"tableflip.dev/storyboard/pkg/app"
	"tableflip.dev/storyboard/pkg/printers"
	"tableflip.dev/storyboard/pkg/template"
)

type Show struct {
	Service  *app.Service
	ID       string
	ShowID   bool
	Timeline bool
	Width    int
	Format   string
	Out      io.Writer
}

func (s *Show) Do(ctx context.Context) error {
	snap, err := s.Service.Template(ctx, s.ID)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: s.ShowID, Out: s.Out}
	if s.Format != "" {
		return app.Encode(pp.Writer(), s.Format, snap)
	}

	t := snap.Template.Template(template.Template{})
	pp.NewLine()
	pp.Template(t, snap.UI)
	if s.Timeline {
		pp.Timeline(t, 0, s.Width)
		pp.NewLine()
	}
	return nil
}
