package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"tableflip.dev/storyboard/pkg/editor"
	"tableflip.dev/storyboard/pkg/store"
	"tableflip.dev/storyboard/pkg/template"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type idSeq struct{ n int }

func (s *idSeq) Next() string {
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}

func newEditor(t *testing.T) *editor.Editor {
	t.Helper()
	ids := &idSeq{}
	return editor.NewBlank("Demo", editor.WithIDs(ids.Next))
}

type failingStorage struct {
	*store.Memory
}

func (failingStorage) Set(string, []byte) error {
	return errors.New("disk full")
}

func decode(t *testing.T, s store.Storage, id string) Snapshot {
	t.Helper()
	data, err := s.Get(Key(id))
	if err != nil {
		t.Fatalf("get snapshot: %v", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	return snap
}

func TestKey(t *testing.T) {
	if got := Key("abc"); got != "template-editor-state-abc" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestProjectExcludesTransientFields(t *testing.T) {
	e := newEditor(t)
	e.AddSection(template.SectionHook, "", 5)
	e.Seek(4)
	e.TogglePlayback()
	e.TrackInteraction("click", "text:headline")
	e.Dispatch(editor.DiscoverFeature{Feature: "undo"})
	e.Dispatch(editor.SetZoom{Zoom: 2})
	e.SetDevice(editor.DeviceDesktop)

	data, err := json.Marshal(Project(e.State()))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, field := range []string{"currentTime", "isPlaying", "zoom", "discovered", "lastInteraction", "recentTools", "history"} {
		if strings.Contains(string(data), `"`+field+`"`) {
			t.Errorf("projection leaked %q: %s", field, data)
		}
	}

	snap := Project(e.State())
	if snap.UI.Device != editor.DeviceDesktop || snap.Template.TotalDuration != 8 {
		t.Fatalf("unexpected projection: %+v", snap)
	}
}

func TestFlushWritesImmediately(t *testing.T) {
	mem := store.NewMemory()
	g := New(mem, WithDelay(time.Hour))
	defer g.Close()
	e := newEditor(t)
	g.Attach(e)

	e.AddSection(template.SectionHook, "Hook", 5)
	if !g.Pending() {
		t.Fatalf("expected a pending write")
	}
	if err := g.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if g.Pending() {
		t.Fatalf("flush should cancel the pending write")
	}

	snap := decode(t, mem, e.Template().ID)
	if len(snap.Template.Sections) != 2 || snap.UI.SelectedSectionID != e.State().UI.SelectedSectionID {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestDebounceCoalescesBurst(t *testing.T) {
	mem := store.NewMemory()
	g := New(mem, WithDelay(50*time.Millisecond))
	defer g.Close()
	e := newEditor(t)
	g.Attach(e)

	for i := 0; i < 5; i++ {
		e.Rename(fmt.Sprintf("name-%d", i))
		time.Sleep(10 * time.Millisecond)
	}
	if _, err := mem.Get(Key(e.Template().ID)); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("nothing should be written during the burst, got %v", err)
	}

	time.Sleep(150 * time.Millisecond)
	snap := decode(t, mem, e.Template().ID)
	if snap.Template.Name != "name-4" {
		t.Fatalf("expected latest name written, got %q", snap.Template.Name)
	}
}

func TestCloseCancelsPendingWrite(t *testing.T) {
	mem := store.NewMemory()
	g := New(mem, WithDelay(30*time.Millisecond))
	e := newEditor(t)
	g.Attach(e)

	e.Rename("never written")
	g.Close()
	time.Sleep(80 * time.Millisecond)

	if keys := mem.Keys(context.Background(), KeyPrefix); len(keys) != 0 {
		t.Fatalf("expected no writes after close, got %v", keys)
	}
	e.Rename("after close")
	if g.Pending() {
		t.Fatalf("closed gateway should not schedule writes")
	}
}

// blockingStorage holds every Set until release is closed.
type blockingStorage struct {
	*store.Memory
	entered chan struct{}
	release chan struct{}
}

func (b blockingStorage) Set(key string, value []byte) error {
	b.entered <- struct{}{}
	<-b.release
	return b.Memory.Set(key, value)
}

func TestEmptyTemplateRoundTrips(t *testing.T) {
	mem := store.NewMemory()
	src := editor.New(template.Template{ID: "empty", Name: "Empty"})
	if err := New(mem).Save(src.State()); err != nil {
		t.Fatalf("save: %v", err)
	}
	dst := editor.New(template.New("empty", "placeholder", "", time.Now()))
	if !New(mem).Restore(dst) {
		t.Fatalf("a template with no sections should still restore")
	}
	if n := len(dst.Template().Sections); n != 0 {
		t.Fatalf("expected no sections, got %d", n)
	}
}

func TestCloseWaitsForInFlightWrite(t *testing.T) {
	mem := store.NewMemory()
	bs := blockingStorage{Memory: mem, entered: make(chan struct{}, 1), release: make(chan struct{})}
	g := New(bs, WithDelay(time.Millisecond))
	e := newEditor(t)
	g.Attach(e)

	e.Rename("in flight")
	select {
	case <-bs.entered:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for the debounced write")
	}

	closed := make(chan struct{})
	go func() {
		g.Close()
		close(closed)
	}()
	select {
	case <-closed:
		t.Fatal("Close returned while a write was in flight")
	case <-time.After(50 * time.Millisecond):
	}

	close(bs.release)
	<-closed
	snap := decode(t, mem, e.Template().ID)
	if snap.Template.Name != "in flight" {
		t.Fatalf("expected the in-flight write to land, got %q", snap.Template.Name)
	}
}

func TestWriteFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	g := New(failingStorage{store.NewMemory()}, WithDelay(10*time.Millisecond), WithLogger(zap.New(core)))
	defer g.Close()
	e := newEditor(t)
	g.Attach(e)

	e.Rename("x")
	time.Sleep(60 * time.Millisecond)

	if logs.FilterMessage("persist: write failed").Len() != 1 {
		t.Fatalf("expected one logged write failure, got %v", logs.All())
	}
	if err := g.Flush(); err == nil {
		t.Fatalf("flush should report the storage error")
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	mem := store.NewMemory()
	src := newEditor(t)
	src.AddSection(template.SectionHook, "Hook", 5)
	hook := src.State().UI.SelectedSectionID
	src.AddTextElement(hook, "Hello", nil)
	src.SetMode(editor.ModeEdit)
	src.SetDevice(editor.DeviceTablet)
	src.Dispatch(editor.SetActiveTab{Tab: "text"})
	src.Dispatch(editor.SetExpertiseLevel{Level: editor.ExpertiseExpert})

	g := New(mem)
	if err := g.Save(src.State()); err != nil {
		t.Fatalf("save: %v", err)
	}

	// A fresh session on the same template id, as after a reload.
	id := src.Template().ID
	dst := editor.New(template.New(id, "placeholder", "", time.Now()))
	g2 := New(mem)
	if !g2.Restore(dst) {
		t.Fatalf("expected restore to load the template")
	}

	got := dst.State()
	if diff := cmp.Diff(src.Template().Sections, got.Template.Sections); diff != "" {
		t.Fatalf("sections mismatch (-want +got):\n%s", diff)
	}
	if got.UI.SelectedSectionID != hook || got.UI.SelectedElementID != src.State().UI.SelectedElementID {
		t.Fatalf("selection not restored: %+v", got.UI)
	}
	if got.UI.Device != editor.DeviceTablet || got.UI.ActiveTab != "text" || got.UI.ExpertiseLevel != editor.ExpertiseExpert {
		t.Fatalf("ui not restored: %+v", got.UI)
	}
	if dst.CanUndo() {
		t.Fatalf("restored session should start with empty history")
	}
}

func TestRestoreRunsOnce(t *testing.T) {
	mem := store.NewMemory()
	e := newEditor(t)
	g := New(mem)
	if g.Restore(e) {
		t.Fatalf("nothing stored yet")
	}
	if err := g.Save(e.State()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if g.Restore(e) {
		t.Fatalf("second restore must not read storage again")
	}
}

func TestRestoreSkipsMalformedBlocks(t *testing.T) {
	mem := store.NewMemory()
	e := newEditor(t)
	id := e.Template().ID
	intro := e.Template().Sections[0].ID

	cases := map[string]struct {
		payload    string
		wantLoaded bool
		wantDevice editor.Device
		wantName   string
	}{
		"bad ui keeps template": {
			payload:    fmt.Sprintf(`{"template":{"id":%q,"name":"Stored","sections":[{"id":%q,"type":"intro","duration":4}]},"ui":"nope"}`, id, intro),
			wantLoaded: true,
			wantDevice: editor.DeviceMobile,
			wantName:   "Stored",
		},
		"bad template keeps ui": {
			payload:    `{"template":{"id":42},"ui":{"device":"desktop"}}`,
			wantLoaded: false,
			wantDevice: editor.DeviceDesktop,
			wantName:   "Demo",
		},
		"bad field skipped": {
			payload:    fmt.Sprintf(`{"template":{"id":%q,"name":"Stored","sections":[]},"ui":{"mode":7,"device":"tablet"}}`, id),
			wantLoaded: true,
			wantDevice: editor.DeviceTablet,
			wantName:   "Stored",
		},
		"null sections keep the current template": {
			payload:    fmt.Sprintf(`{"template":{"id":%q,"name":"Stored","sections":null},"ui":{"device":"tablet"}}`, id),
			wantLoaded: false,
			wantDevice: editor.DeviceTablet,
			wantName:   "Demo",
		},
		"missing sections": {
			payload:    fmt.Sprintf(`{"template":{"id":%q,"name":"Stored"}}`, id),
			wantLoaded: false,
			wantDevice: editor.DeviceMobile,
			wantName:   "Demo",
		},
		"not json": {
			payload:    `{{{`,
			wantLoaded: false,
			wantDevice: editor.DeviceMobile,
			wantName:   "Demo",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if err := mem.Set(Key(id), []byte(tc.payload)); err != nil {
				t.Fatalf("set: %v", err)
			}
			ed := editor.New(e.Template())
			core, _ := observer.New(zapcore.DebugLevel)
			g := New(mem, WithLogger(zap.New(core)))
			if got := g.Restore(ed); got != tc.wantLoaded {
				t.Fatalf("Restore = %v, want %v", got, tc.wantLoaded)
			}
			s := ed.State()
			if s.UI.Device != tc.wantDevice || s.Template.Name != tc.wantName {
				t.Fatalf("unexpected state: device=%s name=%q", s.UI.Device, s.Template.Name)
			}
			var sum float64
			for _, sec := range s.Template.Sections {
				sum += sec.Duration
			}
			if s.Template.TotalDuration != sum {
				t.Fatalf("restored template not retimed: %v != %v", s.Template.TotalDuration, sum)
			}
		})
	}
}
