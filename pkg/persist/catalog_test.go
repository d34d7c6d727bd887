package persist

import (
	"context"
	"errors"
	"testing"
	"time"

	"tableflip.dev/storyboard/pkg/editor"
	"tableflip.dev/storyboard/pkg/store"
	"tableflip.dev/storyboard/pkg/template"
)

func TestCatalog(t *testing.T) {
	mem := store.NewMemory()
	g := New(mem)

	now := time.Now()
	a := editor.New(template.New("tpl-a", "s-a", "alpha", now))
	b := editor.New(template.New("tpl-b", "s-b", "beta", now))
	if err := g.Save(a.State()); err != nil {
		t.Fatalf("save a: %v", err)
	}
	if err := g.Save(b.State()); err != nil {
		t.Fatalf("save b: %v", err)
	}
	if err := mem.Set(Key("broken"), []byte("{")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := mem.Set(Key("hollow"), []byte(`{"template":{"id":"hollow","sections":null}}`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := mem.Set("unrelated", []byte("x")); err != nil {
		t.Fatalf("set: %v", err)
	}

	snaps, err := List(context.Background(), mem)
	if err == nil {
		t.Fatalf("expected the broken entry to be reported")
	}
	if len(snaps) != 2 {
		t.Fatalf("expected 2 readable snapshots, got %d", len(snaps))
	}

	if _, err := Load(mem, "hollow"); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed for null sections, got %v", err)
	}

	got, err := Load(mem, a.Template().ID)
	if err != nil || got.Template.Name != "alpha" {
		t.Fatalf("load = %+v, %v", got.Template, err)
	}

	if err := Remove(mem, a.Template().ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := Load(mem, a.Template().ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after remove, got %v", err)
	}
}
