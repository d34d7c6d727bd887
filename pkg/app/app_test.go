package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"tableflip.dev/storyboard/pkg/editor"
	"tableflip.dev/storyboard/pkg/store"
	"tableflip.dev/storyboard/pkg/template"
)

func newService(t *testing.T) (*Service, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	n := 0
	return &Service{
		Storage:  mem,
		Debounce: time.Hour,
		EditorOptions: []editor.Option{editor.WithIDs(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		})},
	}, mem
}

func TestCreateThenOpen(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	sess, err := svc.Create(ctx, "Launch", "spring promo", template.AspectSquare)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	id := sess.Template().ID
	if sess.CanUndo() {
		t.Fatalf("a new template should have nothing to undo")
	}
	if err := sess.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := svc.Open(ctx, id)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer reopened.Close()
	got := reopened.Template()
	if got.Name != "Launch" || got.Description != "spring promo" || got.AspectRatio != template.AspectSquare {
		t.Fatalf("unexpected template: %+v", got)
	}
	if len(got.Sections) != 1 || got.Sections[0].Type != template.SectionIntro {
		t.Fatalf("expected the default intro section, got %+v", got.Sections)
	}
}

func TestEditPersists(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	sess, err := svc.Create(ctx, "Demo", "", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	id := sess.Template().ID
	_ = sess.Close()

	state, err := svc.Edit(ctx, id, func(s *Session) error {
		s.AddSection(template.SectionHook, "Hook", 5)
		s.AddTextElement(s.State().UI.SelectedSectionID, "Hello", nil)
		return nil
	})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if state.Template.TotalDuration != 8 {
		t.Fatalf("expected total 8, got %v", state.Template.TotalDuration)
	}

	snap, err := svc.Template(ctx, id)
	if err != nil {
		t.Fatalf("template: %v", err)
	}
	if diff := cmp.Diff(state.Template.Sections, snap.Template.Sections); diff != "" {
		t.Fatalf("stored sections differ (-edited +stored):\n%s", diff)
	}
	if snap.UI.SelectedElementID == "" {
		t.Fatalf("expected the new element selection to be stored")
	}
}

func TestEditErrorDiscardsChanges(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	sess, _ := svc.Create(ctx, "Demo", "", "")
	id := sess.Template().ID
	_ = sess.Close()

	boom := errors.New("boom")
	_, err := svc.Edit(ctx, id, func(s *Session) error {
		s.Rename("changed")
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	snap, _ := svc.Template(ctx, id)
	if snap.Template.Name != "Demo" {
		t.Fatalf("failed edit should not be written, got %q", snap.Template.Name)
	}
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	for _, id := range []string{"abc123", "abd456"} {
		e := editor.New(template.New(id, "s-"+id, id, time.Now()))
		sess := &Session{Editor: e, gateway: svc.gateway()}
		sess.gateway.Attach(e)
		if err := sess.Close(); err != nil {
			t.Fatalf("store %s: %v", id, err)
		}
	}

	cases := map[string]struct {
		in   string
		want string
		err  error
	}{
		"exact":     {in: "abc123", want: "abc123"},
		"prefix":    {in: "abd", want: "abd456"},
		"ambiguous": {in: "ab", err: ErrAmbiguousID},
		"missing":   {in: "zzz", err: ErrTemplateNotFound},
		"empty":     {in: " ", err: ErrTemplateNotFound},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := svc.Resolve(ctx, tc.in)
			if tc.err != nil {
				if !errors.Is(err, tc.err) {
					t.Fatalf("expected %v, got %v", tc.err, err)
				}
				return
			}
			if err != nil || got != tc.want {
				t.Fatalf("Resolve(%q) = %q, %v", tc.in, got, err)
			}
		})
	}
}

func TestTemplatesAndRemove(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	for _, name := range []string{"zeta", "Alpha", "mid"} {
		sess, err := svc.Create(ctx, name, "", "")
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		_ = sess.Close()
	}

	snaps, err := svc.Templates(ctx)
	if err != nil {
		t.Fatalf("templates: %v", err)
	}
	var names []string
	for _, s := range snaps {
		names = append(names, s.Template.Name)
	}
	if diff := cmp.Diff([]string{"Alpha", "mid", "zeta"}, names); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}

	removed, err := svc.Remove(ctx, snaps[0].Template.ID)
	if err != nil || removed != snaps[0].Template.ID {
		t.Fatalf("remove = %q, %v", removed, err)
	}
	if _, err := svc.Open(ctx, removed); !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestOpenUnreadable(t *testing.T) {
	cases := map[string]string{
		"no id":         `{"template":{"id":""}}`,
		"null sections": `{"template":{"id":"bad","name":"Hollow","sections":null}}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			svc, mem := newService(t)
			if err := mem.Set("template-editor-state-bad", []byte(payload)); err != nil {
				t.Fatalf("set: %v", err)
			}
			if _, err := svc.Open(context.Background(), "bad"); !errors.Is(err, ErrUnreadable) {
				t.Fatalf("expected ErrUnreadable, got %v", err)
			}
		})
	}
}

func TestNoStorage(t *testing.T) {
	svc := &Service{}
	if _, err := svc.Create(context.Background(), "x", "", ""); !errors.Is(err, ErrNoStorage) {
		t.Fatalf("expected ErrNoStorage, got %v", err)
	}
	if _, err := svc.Templates(context.Background()); !errors.Is(err, ErrNoStorage) {
		t.Fatalf("expected ErrNoStorage, got %v", err)
	}
}

func TestReport(t *testing.T) {
	tpl := template.New("t", "intro", "Demo", time.Now())
	hook := template.NewSection(template.SectionHook, "Hook", 2)
	body := template.NewSection(template.SectionBody, "Body", 4)
	body.Elements = append(body.Elements, template.NewText("a", nil), template.NewText("b", nil))
	body2 := template.NewSection(template.SectionBody, "More", 1)
	tpl.Sections = append(tpl.Sections, hook, body, body2)
	tpl.Retime()

	got := Breakdown(tpl)
	want := ReportResult{
		ID:            "t",
		Name:          "Demo",
		TotalDuration: 10,
		Sections:      4,
		Elements:      2,
		Items: []ReportItem{
			{Type: template.SectionIntro, Sections: 1, Duration: 3, Share: 0.3},
			{Type: template.SectionHook, Sections: 1, Duration: 2, Share: 0.2},
			{Type: template.SectionBody, Sections: 2, Elements: 2, Duration: 5, Share: 0.5},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("breakdown mismatch (-want +got):\n%s", diff)
	}
}

func TestExportImportYAML(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	sess, _ := svc.Create(ctx, "Demo", "", "")
	sess.AddSection(template.SectionCallToAction, "Buy", 4)
	id := sess.Template().ID
	if err := sess.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	var buf bytes.Buffer
	if err := svc.Export(ctx, id, "yaml", &buf); err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(buf.String(), "totalDuration: 7") {
		t.Fatalf("expected json field names in yaml output:\n%s", buf.String())
	}

	if _, err := svc.Import(ctx, bytes.NewReader(buf.Bytes()), false); !errors.Is(err, ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
	other, _ := newService(t)
	got, err := other.Import(ctx, bytes.NewReader(buf.Bytes()), false)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if got.ID != id || len(got.Sections) != 2 || got.TotalDuration != 7 {
		t.Fatalf("unexpected import: %+v", got)
	}
}

func TestImportIDPrefixOfStoredID(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	doc := func(id string) *strings.Reader {
		return strings.NewReader("id: " + id + "\nname: " + id + "\nsections: [{type: body, duration: 1}]\n")
	}
	for _, id := range []string{"promo-2", "promo-3"} {
		if _, err := svc.Import(ctx, doc(id), false); err != nil {
			t.Fatalf("import %s: %v", id, err)
		}
	}

	got, err := svc.Import(ctx, doc("promo"), false)
	if err != nil {
		t.Fatalf("import of a prefix id: %v", err)
	}
	if got.ID != "promo" {
		t.Fatalf("expected id promo, got %q", got.ID)
	}
	if _, err := svc.Import(ctx, doc("promo"), false); !errors.Is(err, ErrExists) {
		t.Fatalf("expected ErrExists on the exact id, got %v", err)
	}
	snaps, err := svc.Templates(ctx)
	if err != nil || len(snaps) != 3 {
		t.Fatalf("expected 3 templates, got %d (%v)", len(snaps), err)
	}
}

func TestImportFillsDefaults(t *testing.T) {
	svc, _ := newService(t)
	doc := `
name: Sketch
sections:
  - name: Open
    type: HOOK
    duration: 2
  - name: Close
    duration: 1.5
`
	got, err := svc.Import(context.Background(), strings.NewReader(doc), false)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if got.ID == "" || got.Sections[0].ID == "" || got.Sections[0].ID == got.Sections[1].ID {
		t.Fatalf("expected generated ids: %+v", got)
	}
	if got.Sections[0].Type != template.SectionHook || got.Sections[1].Type != template.SectionBody {
		t.Fatalf("unexpected types: %s %s", got.Sections[0].Type, got.Sections[1].Type)
	}
	if got.Sections[1].StartTime != 2 || got.TotalDuration != 3.5 {
		t.Fatalf("imported template not retimed: %+v", got)
	}

	if _, err := svc.Import(context.Background(), strings.NewReader("name: empty\n"), false); err == nil {
		t.Fatalf("expected an error for a template without sections")
	}
	if _, err := svc.Import(context.Background(), strings.NewReader("sections: [{type: nope}]\n"), false); err == nil {
		t.Fatalf("expected an error for an unknown section type")
	}
}
