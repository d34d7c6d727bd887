package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type testConfig struct {
	path string
}

func (t testConfig) BasePath() string        { return t.path }
func (t testConfig) Debounce() time.Duration { return time.Second }
func (t testConfig) HistoryLimit() int       { return 0 }
func (t testConfig) LogLevel() string        { return "info" }

func TestStorageWatchEmitsKeyChanges(t *testing.T) {
	base := t.TempDir()
	p, err := Load(testConfig{path: base})
	if err != nil {
		t.Fatalf("load storage: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// The first write also creates its shard directory, which is only watched
	// once the create event arrives; the key must still be reported.
	keys := []string{"template-editor-state-abc", "template-editor-state-abd"}
	for _, k := range keys {
		if err := p.Set(k, []byte(`{}`)); err != nil {
			t.Fatalf("set: %v", err)
		}
	}

	seen := map[string]bool{}
	deadline := time.After(2 * time.Second)
	for len(seen) < len(keys) {
		select {
		case evt, ok := <-ch:
			if !ok {
				t.Fatal("watch stream closed early")
			}
			if evt.Type == EventKeyChanged {
				seen[evt.Key] = true
			}
		case <-deadline:
			t.Fatalf("timed out waiting for key changes, saw %v", seen)
		}
	}
	for _, k := range keys {
		if !seen[k] {
			t.Fatalf("no event for %q", k)
		}
	}

	cancel()
	for range ch {
	}
}

func TestKeyBatch(t *testing.T) {
	var events []Event
	b := newKeyBatch(time.Hour, func(ev Event) { events = append(events, ev) })
	b.add("b")
	b.add("a")
	b.add("b")
	b.invalidate()
	b.flush()

	want := []Event{
		{Type: EventInvalidated},
		{Type: EventKeyChanged, Key: "a"},
		{Type: EventKeyChanged, Key: "b"},
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Fatalf("batch (-want +got):\n%s", diff)
	}

	b.add("c")
	b.stop()
	b.flush()
	if len(events) != len(want) {
		t.Fatalf("event after stop: %+v", events[len(want):])
	}
}

func TestKeyForPath(t *testing.T) {
	base := t.TempDir()
	p := &diskStorage{basePath: base}
	pk := keyToPathTransform("template-editor-state-x")
	file := filepath.Join(base, pk.Path[0], pk.FileName)

	if got := p.keyForPath(file); got != "template-editor-state-x" {
		t.Fatalf("keyForPath = %q", got)
	}
	for _, path := range []string{
		base,
		filepath.Join(base, pk.Path[0]),
		filepath.Join(base, "zz", pk.FileName),
	} {
		if got := p.keyForPath(path); got != "" {
			t.Fatalf("expected no key for %s, got %q", path, got)
		}
	}
}

func TestWatchLogsShardFailures(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	got := make(chan Event, 1)
	w := &keyWatcher{
		store: &diskStorage{basePath: t.TempDir()},
		fs:    fw,
		log:   zap.New(core),
		shard: map[string]bool{},
		batch: newKeyBatch(time.Millisecond, func(ev Event) { got <- ev }),
	}
	defer w.close()

	w.addShard(filepath.Join(t.TempDir(), "gone"))

	if n := logs.FilterMessage("watch shard").Len(); n != 1 {
		t.Fatalf("expected one warning, got %d", n)
	}
	select {
	case ev := <-got:
		if ev.Type != EventInvalidated {
			t.Fatalf("expected an invalidation, got %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for invalidation")
	}
}

func TestMemoryWatch(t *testing.T) {
	m := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	ch, err := m.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	if err := m.Set("k", []byte("v")); err != nil {
		t.Fatalf("set: %v", err)
	}
	select {
	case evt := <-ch:
		if evt.Key != "k" || evt.Type != EventKeyChanged {
			t.Fatalf("unexpected event %+v", evt)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
	cancel()
	for range ch {
	}
}
