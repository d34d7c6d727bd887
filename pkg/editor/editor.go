// Package editor implements the template editor state machine: a reducer over
// (document, UI, history) state, and an Editor facade that owns one session.
package editor

import (
	"errors"
	"sync"
	"time"

	"tableflip.dev/storyboard/pkg/template"
)

// ErrNotFound is returned by lookups for ids that are not in the document.
// The reducer itself never returns it; unknown ids there are no-ops.
var ErrNotFound = errors.New("editor: not found")

// Option customises New.
type Option func(*Reducer)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(r *Reducer) { r.Now = now }
}

// WithIDs overrides the id source used for new sections and elements.
func WithIDs(next func() string) Option {
	return func(r *Reducer) { r.NewID = next }
}

// WithHistoryLimit caps the undo depth; zero keeps it unbounded.
func WithHistoryLimit(n int) Option {
	return func(r *Reducer) { r.HistoryLimit = n }
}

// Listener is notified with the new State after every dispatch that changed it.
type Listener func(State)

// Editor owns the State of one editing session. All mutation goes through
// Dispatch.
type Editor struct {
	mu        sync.Mutex
	reducer   Reducer
	state     State
	revision  uint64
	listeners map[int]Listener
	nextID    int
	closed    bool

	memo selection
}

type selection struct {
	revision uint64
	valid    bool
	section  *template.Section
	element  *template.Element
}

// New starts a session on initial. Pass template.New(...) for a blank
// document.
func New(initial template.Template, opts ...Option) *Editor {
	r := Reducer{}
	for _, opt := range opts {
		opt(&r)
	}
	return &Editor{
		reducer:   r,
		state:     r.Init(initial),
		listeners: make(map[int]Listener),
	}
}

// NewBlank starts a session on a fresh template with a single intro section.
func NewBlank(name string, opts ...Option) *Editor {
	r := Reducer{}
	for _, opt := range opts {
		opt(&r)
	}
	return New(template.New(r.newID(), r.newID(), name, r.now()), opts...)
}

// Dispatch applies a and returns the resulting State. After Close it returns
// the last State without applying a.
func (e *Editor) Dispatch(a Action) State {
	e.mu.Lock()
	if e.closed || a == nil {
		s := e.state
		e.mu.Unlock()
		return s
	}
	prev := e.state
	next := e.reducer.Reduce(prev, a)
	var listeners []Listener
	if next.rev != prev.rev {
		e.state = next
		e.revision++
		listeners = e.listenersInOrder()
	}
	e.mu.Unlock()

	for _, l := range listeners {
		l(next)
	}
	return next
}

// State returns the current State.
func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Revision counts the dispatches that changed the State.
func (e *Editor) Revision() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.revision
}

// Subscribe registers l and returns a function that removes it.
func (e *Editor) Subscribe(l Listener) (cancel func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := e.nextID
	e.nextID++
	e.listeners[id] = l
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.listeners, id)
	}
}

// Close tears the session down: listeners are dropped and further dispatches
// are ignored.
func (e *Editor) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	e.listeners = make(map[int]Listener)
}

func (e *Editor) listenersInOrder() []Listener {
	out := make([]Listener, 0, len(e.listeners))
	for id := 0; id < e.nextID; id++ {
		if l, ok := e.listeners[id]; ok {
			out = append(out, l)
		}
	}
	return out
}
