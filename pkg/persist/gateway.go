package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/storyboard/pkg/editor"
	"tableflip.dev/storyboard/pkg/store"
)

// DefaultDelay is the quiet period before a snapshot is written.
const DefaultDelay = 2 * time.Second

// Gateway snapshots one editor session into storage. Write and restore
// failures are logged and swallowed; the next quiet period tries again.
type Gateway struct {
	storage store.Storage
	delay   time.Duration
	log     *zap.Logger
	deb     *debouncer

	// wmu is held across the closed check and the write, and by Close.
	wmu sync.Mutex

	mu          sync.Mutex
	editor      *editor.Editor
	unsubscribe func()
	closed      bool

	restoreOnce sync.Once
	restored    bool
}

// Option customises New.
type Option func(*Gateway)

// WithDelay overrides DefaultDelay.
func WithDelay(d time.Duration) Option {
	return func(g *Gateway) {
		if d > 0 {
			g.delay = d
		}
	}
}

// WithLogger sets the logger used for swallowed failures.
func WithLogger(l *zap.Logger) Option {
	return func(g *Gateway) {
		if l != nil {
			g.log = l
		}
	}
}

// New returns a Gateway writing into s.
func New(s store.Storage, opts ...Option) *Gateway {
	g := &Gateway{
		storage: s,
		delay:   DefaultDelay,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.deb = newDebouncer(g.delay)
	return g
}

// Attach subscribes to e. Every state change restarts the quiet period; when
// it elapses the latest state is written.
func (g *Gateway) Attach(e *editor.Editor) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return
	}
	if g.unsubscribe != nil {
		g.unsubscribe()
	}
	g.editor = e
	g.unsubscribe = e.Subscribe(func(editor.State) {
		g.deb.Debounce(g.writeLatest)
	})
}

// Pending reports whether a write is scheduled.
func (g *Gateway) Pending() bool {
	return g.deb.Pending()
}

// Flush cancels the pending write and writes the latest state now.
func (g *Gateway) Flush() error {
	g.deb.Cancel()
	g.wmu.Lock()
	defer g.wmu.Unlock()
	g.mu.Lock()
	e, closed := g.editor, g.closed
	g.mu.Unlock()
	if e == nil || closed {
		return nil
	}
	return g.Save(e.State())
}

// Close cancels any pending write and detaches from the editor. Nothing is
// written after Close returns.
func (g *Gateway) Close() {
	g.wmu.Lock()
	defer g.wmu.Unlock()
	g.mu.Lock()
	g.closed = true
	if g.unsubscribe != nil {
		g.unsubscribe()
		g.unsubscribe = nil
	}
	g.editor = nil
	g.mu.Unlock()
	if g.deb.Cancel() {
		g.log.Debug("persist: dropped pending write on close")
	}
}

func (g *Gateway) writeLatest() {
	g.wmu.Lock()
	defer g.wmu.Unlock()
	g.mu.Lock()
	e, closed := g.editor, g.closed
	g.mu.Unlock()
	if e == nil || closed {
		return
	}
	if err := g.Save(e.State()); err != nil {
		g.log.Warn("persist: write failed", zap.Error(err))
	}
}

// Save writes the essential projection of s under Key(s.Template.ID).
func (g *Gateway) Save(s editor.State) error {
	if s.Template.ID == "" {
		return errors.New("persist: template id required")
	}
	key := Key(s.Template.ID)
	data, err := json.Marshal(Project(s))
	if err != nil {
		return fmt.Errorf("persist: encode %s: %w", key, err)
	}
	if err := g.storage.Set(key, data); err != nil {
		return fmt.Errorf("persist: store %s: %w", key, err)
	}
	g.log.Debug("persist: wrote snapshot",
		zap.String("key", key),
		zap.Int("bytes", len(data)),
		zap.Int("sections", len(s.Template.Sections)))
	return nil
}

// Restore loads the stored snapshot of e's current template into e. Only the
// first call on a Gateway reads storage; later calls return the first result.
// It reports whether a stored template was loaded.
func (g *Gateway) Restore(e *editor.Editor) bool {
	g.restoreOnce.Do(func() {
		g.restored = g.restore(e)
	})
	return g.restored
}

func (g *Gateway) restore(e *editor.Editor) bool {
	key := Key(e.Template().ID)
	data, err := g.storage.Get(key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			g.log.Warn("persist: read failed", zap.String("key", key), zap.Error(err))
		} else {
			g.log.Debug("persist: nothing stored", zap.String("key", key))
		}
		return false
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		g.log.Warn("persist: corrupt snapshot", zap.String("key", key), zap.Error(err))
		return false
	}

	loaded := false
	if block, ok := raw["template"]; ok {
		var ts TemplateSnapshot
		err := json.Unmarshal(block, &ts)
		if err == nil {
			err = ts.Validate()
		}
		if err != nil {
			g.log.Warn("persist: skipping template block", zap.String("key", key), zap.Error(err))
		} else {
			e.Load(ts.Template(e.Template()))
			loaded = true
		}
	}

	if block, ok := raw["ui"]; ok {
		g.restoreUI(e, key, block)
	}
	return loaded
}

// restoreUI applies each UI field on its own so one malformed field does not
// abort the rest.
func (g *Gateway) restoreUI(e *editor.Editor, key string, block json.RawMessage) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(block, &fields); err != nil {
		g.log.Warn("persist: skipping ui block", zap.String("key", key), zap.Error(err))
		return
	}
	str := func(name string) (string, bool) {
		v, ok := fields[name]
		if !ok {
			return "", false
		}
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			g.log.Warn("persist: skipping ui field", zap.String("key", key), zap.String("field", name), zap.Error(err))
			return "", false
		}
		return s, s != ""
	}

	if id, ok := str("selectedSectionId"); ok {
		if _, err := e.Section(id); err == nil {
			e.SelectSection(id)
			if el, ok := str("selectedElementId"); ok {
				if _, err := e.Element(editor.ElementRef{SectionID: id, ElementID: el}); err == nil {
					e.SelectElement(id, el)
				}
			}
		}
	}
	if v, ok := str("mode"); ok {
		if m, err := editor.ParseMode(v); err == nil {
			e.SetMode(m)
		}
	}
	if v, ok := str("device"); ok {
		if d, err := editor.ParseDevice(v); err == nil {
			e.SetDevice(d)
		}
	}
	if v, ok := str("activeTab"); ok {
		e.Dispatch(editor.SetActiveTab{Tab: v})
	}
	if v, ok := str("expertiseLevel"); ok {
		if l, err := editor.ParseExpertiseLevel(v); err == nil {
			e.Dispatch(editor.SetExpertiseLevel{Level: l})
		}
	}
}
