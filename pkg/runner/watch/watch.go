// Package watch reports changes to stored templates as they happen.
package watch

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/storyboard/pkg/app"
	"tableflip.dev/storyboard/pkg/persist"
	"tableflip.dev/storyboard/pkg/printers"
	"tableflip.dev/storyboard/pkg/store"
	"tableflip.dev/storyboard/pkg/timeutil"
)

type Watch struct {
	Service *app.Service
	Out     io.Writer
	// Now stamps each line; defaults to time.Now.
	Now func() time.Time
}

// Do prints one line per change until ctx is done.
func (w *Watch) Do(ctx context.Context) error {
	events, err := w.Service.Watch(ctx)
	if err != nil {
		return err
	}
	out := (&printers.PrettyPrint{Out: w.Out}).Writer()
	_, _ = color.New(color.Faint).Fprintln(out, "watching for template changes, ctrl-c to stop")
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if line := w.describe(ctx, ev); line != "" {
				_, _ = fmt.Fprintln(out, line)
			}
		}
	}
}

func (w *Watch) describe(ctx context.Context, ev store.Event) string {
	now := time.Now
	if w.Now != nil {
		now = w.Now
	}
	stamp := color.New(color.Faint).Sprint(now().Format("15:04:05"))
	y := color.New(color.FgHiYellow)

	switch ev.Type {
	case store.EventInvalidated:
		return fmt.Sprintf("%s storage reloaded", stamp)
	case store.EventKeyChanged:
		if !strings.HasPrefix(ev.Key, persist.KeyPrefix) {
			return ""
		}
		id := strings.TrimPrefix(ev.Key, persist.KeyPrefix)
		snap, err := w.Service.Template(ctx, id)
		if err != nil {
			return fmt.Sprintf("%s %s removed", stamp, y.Sprint(id))
		}
		t := snap.Template
		return fmt.Sprintf("%s %s %s: %d sections, %s", stamp, y.Sprint(id), t.Name,
			len(t.Sections), timeutil.FormatSeconds(t.TotalDuration))
	}
	return ""
}
