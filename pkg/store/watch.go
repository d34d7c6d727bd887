package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// EventType describes the nature of a storage change notification.
type EventType int

const (
	// EventKeyChanged indicates the value under Key was written or removed.
	EventKeyChanged EventType = iota

	// EventInvalidated signals a change that could not be attributed to a
	// single key; callers should re-list.
	EventInvalidated
)

// Event is emitted by Storage.Watch when underlying storage changes.
type Event struct {
	Type EventType
	Key  string
}

// watchQuiet is how long a key must stay untouched before its event is sent.
const watchQuiet = 100 * time.Millisecond

// Watch streams change events until ctx is cancelled. Callers should drain the
// returned channel; events that do not fit are dropped. The channel is closed
// once ctx is done or the underlying watcher stops.
func (p *diskStorage) Watch(ctx context.Context) (<-chan Event, error) {
	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}

	w := &keyWatcher{
		store: p,
		fs:    fw,
		log:   p.log,
		shard: make(map[string]bool),
		out:   make(chan Event, 64),
	}
	w.batch = newKeyBatch(watchQuiet, w.send)

	shards, err := shardDirs(p.basePath)
	if err == nil {
		err = w.watch(p.basePath)
	}
	for _, dir := range shards {
		if err != nil {
			break
		}
		err = w.watch(dir)
	}
	if err != nil {
		w.close()
		return nil, fmt.Errorf("store: watch %s: %w", p.basePath, err)
	}

	go w.run(ctx)
	return w.out, nil
}

// keyWatcher translates filesystem events under the diskv base path into
// per-key events.
type keyWatcher struct {
	store *diskStorage
	fs    *fsnotify.Watcher
	log   *zap.Logger
	batch *keyBatch
	// shard records the directories already added to fs.
	shard map[string]bool
	out   chan Event
}

func (w *keyWatcher) run(ctx context.Context) {
	defer close(w.out)
	defer w.close()
	defer w.batch.stop()

	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("watcher error", zap.Error(err))
			w.batch.invalidate()
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handle(ev)
		}
	}
}

func (w *keyWatcher) handle(ev fsnotify.Event) {
	if ev.Op == fsnotify.Chmod {
		return
	}
	if key := w.store.keyForPath(ev.Name); key != "" {
		w.batch.add(key)
		return
	}
	if ev.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			w.addShard(filepath.Clean(ev.Name))
			return
		}
	}
	w.batch.invalidate()
}

// addShard starts watching a new shard directory and reports the keys that
// were written into it before the watch was in place.
func (w *keyWatcher) addShard(dir string) {
	if err := w.watch(dir); err != nil {
		w.log.Warn("watch shard", zap.String("dir", dir), zap.Error(err))
		w.batch.invalidate()
		return
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		w.batch.invalidate()
		return
	}
	for _, e := range entries {
		if key := w.store.keyForPath(filepath.Join(dir, e.Name())); key != "" {
			w.batch.add(key)
		}
	}
}

func (w *keyWatcher) watch(dir string) error {
	if w.shard[dir] {
		return nil
	}
	if err := w.fs.Add(dir); err != nil {
		return err
	}
	w.shard[dir] = true
	return nil
}

func (w *keyWatcher) send(ev Event) {
	select {
	case w.out <- ev:
	default:
	}
}

func (w *keyWatcher) close() {
	if err := w.fs.Close(); err != nil {
		w.log.Warn("close watcher", zap.Error(err))
	}
}

// shardDirs lists the shard directories directly below base.
func shardDirs(base string) ([]string, error) {
	entries, err := os.ReadDir(base)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, filepath.Join(base, e.Name()))
		}
	}
	return dirs, nil
}

// keyForPath maps a file inside a shard directory back to its storage key.
func (p *diskStorage) keyForPath(path string) string {
	rel, err := filepath.Rel(p.basePath, path)
	if err != nil || rel == "." {
		return ""
	}
	dir, file := filepath.Split(rel)
	if file == "" || filepath.Clean(dir) != shardOf(file) {
		return ""
	}
	return decodeKey(file)
}

// keyBatch collects touched keys and sends them, sorted, once no new key has
// arrived for quiet. An invalidation is sent once per batch, ahead of keys.
type keyBatch struct {
	mu          sync.Mutex
	quiet       time.Duration
	send        func(Event)
	keys        map[string]struct{}
	invalidated bool
	timer       *time.Timer
	stopped     bool
}

func newKeyBatch(quiet time.Duration, send func(Event)) *keyBatch {
	return &keyBatch{quiet: quiet, send: send, keys: make(map[string]struct{})}
}

func (b *keyBatch) add(key string) {
	b.mu.Lock()
	b.keys[key] = struct{}{}
	b.armLocked()
	b.mu.Unlock()
}

func (b *keyBatch) invalidate() {
	b.mu.Lock()
	b.invalidated = true
	b.armLocked()
	b.mu.Unlock()
}

func (b *keyBatch) armLocked() {
	if b.stopped {
		return
	}
	if b.timer == nil {
		b.timer = time.AfterFunc(b.quiet, b.flush)
		return
	}
	b.timer.Reset(b.quiet)
}

func (b *keyBatch) flush() {
	b.mu.Lock()
	if b.stopped {
		b.mu.Unlock()
		return
	}
	keys := make([]string, 0, len(b.keys))
	for k := range b.keys {
		keys = append(keys, k)
	}
	invalidated := b.invalidated
	b.keys = make(map[string]struct{})
	b.invalidated = false
	b.timer = nil
	// Sent under mu so nothing goes out after stop returns.
	sort.Strings(keys)
	if invalidated {
		b.send(Event{Type: EventInvalidated})
	}
	for _, k := range keys {
		b.send(Event{Type: EventKeyChanged, Key: k})
	}
	b.mu.Unlock()
}

// stop cancels any pending batch. No event is sent after stop returns.
func (b *keyBatch) stop() {
	b.mu.Lock()
	b.stopped = true
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.mu.Unlock()
}
