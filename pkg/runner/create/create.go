// Package create starts new templates from the command line.
package create

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/storyboard/pkg/app"
	"tableflip.dev/storyboard/pkg/printers"
	"tableflip.dev/storyboard/pkg/template"
)

// Create makes a blank template with a single intro section.
type Create struct {
	Service     *app.Service
	Name        string
	Description string
	Aspect      template.AspectRatio
	Format      string
	Out         io.Writer
}

// Do creates and stores the template, then prints its id.
func (c *Create) Do(ctx context.Context) error {
	out := (&printers.PrettyPrint{Out: c.Out}).Writer()
	sess, err := c.Service.Create(ctx, c.Name, c.Description, c.Aspect)
	if err != nil {
		return err
	}
	t := sess.Template()
	if err := sess.Close(); err != nil {
		return err
	}

	if c.Format != "" {
		return app.Encode(out, c.Format, t)
	}
	y := color.New(color.FgHiYellow)
	_, _ = fmt.Fprintf(out, "created %s %s\n", y.Sprint(t.ID), t.Name)
	return nil
}
