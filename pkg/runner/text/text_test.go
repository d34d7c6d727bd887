package text

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/storyboard/pkg/app"
	"tableflip.dev/storyboard/pkg/store"
)

func TestTextOps(t *testing.T) {
	color.NoColor = true
	ctx := context.Background()
	svc := &app.Service{Storage: store.NewMemory(), Debounce: time.Hour}
	sess, err := svc.Create(ctx, "Demo", "", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	id := sess.Template().ID
	_ = sess.Close()

	var out bytes.Buffer
	x := 25.0
	add := &Text{Service: svc, ID: id, Op: OpAdd, Content: "Hello", X: &x, Out: &out}
	if err := add.Do(ctx); err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.HasPrefix(out.String(), "added text ") {
		t.Fatalf("unexpected output %q", out.String())
	}

	snap, _ := svc.Template(ctx, id)
	els := snap.Template.Sections[0].Elements
	if len(els) != 1 || els[0].Content != "Hello" || els[0].Position.X != 25 || els[0].Position.Y != 50 {
		t.Fatalf("unexpected elements: %+v", els)
	}
	if snap.UI.SelectedElementID != els[0].ID {
		t.Fatalf("new element should be selected")
	}

	upd := &Text{Service: svc, ID: id, Op: OpUpdate, Content: "Hi again", Out: &bytes.Buffer{}}
	if err := upd.Do(ctx); err != nil {
		t.Fatalf("update: %v", err)
	}
	snap, _ = svc.Template(ctx, id)
	if got := snap.Template.Sections[0].Elements[0].Content; got != "Hi again" {
		t.Fatalf("content not updated: %q", got)
	}

	if err := (&Text{Service: svc, ID: id, Op: OpUpdate, Out: &bytes.Buffer{}}).Do(ctx); err == nil {
		t.Fatalf("expected an error for an empty update")
	}
	if err := (&Text{Service: svc, ID: id, Op: OpAdd, Content: "  ", Out: &bytes.Buffer{}}).Do(ctx); err == nil {
		t.Fatalf("expected an error for empty content")
	}

	rm := &Text{Service: svc, ID: id, Op: OpRemove, Element: els[0].ID[:4], Out: &bytes.Buffer{}}
	if err := rm.Do(ctx); err != nil {
		t.Fatalf("rm: %v", err)
	}
	snap, _ = svc.Template(ctx, id)
	if n := len(snap.Template.Sections[0].Elements); n != 0 {
		t.Fatalf("expected no elements, got %d", n)
	}
}
