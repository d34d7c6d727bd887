// Package app opens editor sessions over local storage. It wraps the store,
// the persistence gateway and the editor so the CLI runners share one path
// for create, restore, edit and flush.
package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tableflip.dev/storyboard/pkg/editor"
	"tableflip.dev/storyboard/pkg/persist"
	"tableflip.dev/storyboard/pkg/store"
	"tableflip.dev/storyboard/pkg/template"
)

var (
	ErrNoStorage        = errors.New("app: no storage configured")
	ErrTemplateNotFound = errors.New("app: template not found")
	ErrAmbiguousID      = errors.New("app: template id is ambiguous")
	ErrUnreadable       = errors.New("app: stored template could not be restored")
)

// Service provides high-level operations on stored templates.
type Service struct {
	Storage store.Storage
	// Debounce is the gateway quiet period; zero uses persist.DefaultDelay.
	Debounce     time.Duration
	HistoryLimit int
	Log          *zap.Logger
	// EditorOptions are appended after the history limit, for tests that pin
	// ids or the clock.
	EditorOptions []editor.Option
}

// Session is one open editor bound to its persistence gateway.
type Session struct {
	*editor.Editor
	gateway *persist.Gateway
}

// Close writes the latest state and releases the session. The write error, if
// any, is returned.
func (s *Session) Close() error {
	err := s.gateway.Flush()
	s.gateway.Close()
	s.Editor.Close()
	return err
}

// Discard releases the session without writing pending changes.
func (s *Session) Discard() {
	s.gateway.Close()
	s.Editor.Close()
}

// Flush writes the latest state without closing the session.
func (s *Session) Flush() error {
	return s.gateway.Flush()
}

func (s *Service) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

func (s *Service) editorOptions() []editor.Option {
	opts := []editor.Option{editor.WithHistoryLimit(s.HistoryLimit)}
	return append(opts, s.EditorOptions...)
}

func (s *Service) gateway() *persist.Gateway {
	return persist.New(s.Storage,
		persist.WithDelay(s.Debounce),
		persist.WithLogger(s.logger().Named("persist")))
}

// Create starts a session on a new blank template and writes it immediately.
func (s *Service) Create(ctx context.Context, name, description string, aspect template.AspectRatio) (*Session, error) {
	if s.Storage == nil {
		return nil, ErrNoStorage
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e := editor.NewBlank(name, s.editorOptions()...)
	if description != "" || aspect != "" {
		p := editor.TemplatePatch{}
		if description != "" {
			p.Description = &description
		}
		if aspect != "" {
			p.AspectRatio = &aspect
		}
		// Folded into the initial snapshot so the new template has no undo step.
		t := e.UpdateTemplate(p).Template
		e.Load(t)
	}
	g := s.gateway()
	g.Attach(e)
	sess := &Session{Editor: e, gateway: g}
	if err := sess.Flush(); err != nil {
		sess.Discard()
		return nil, err
	}
	s.logger().Debug("created template", zap.String("id", e.Template().ID))
	return sess, nil
}

// Open restores the stored template matching id (a full id or a unique
// prefix) into a new session.
func (s *Service) Open(ctx context.Context, id string) (*Session, error) {
	full, err := s.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	placeholder := template.New(full, uuid.NewString(), "", time.Now())
	e := editor.New(placeholder, s.editorOptions()...)
	g := s.gateway()
	if !g.Restore(e) {
		(&Session{Editor: e, gateway: g}).Discard()
		return nil, fmt.Errorf("%w: %s", ErrUnreadable, full)
	}
	g.Attach(e)
	return &Session{Editor: e, gateway: g}, nil
}

// Edit opens id, applies fn and closes the session, writing the result.
func (s *Service) Edit(ctx context.Context, id string, fn func(*Session) error) (editor.State, error) {
	sess, err := s.Open(ctx, id)
	if err != nil {
		return editor.State{}, err
	}
	if err := fn(sess); err != nil {
		sess.Discard()
		return editor.State{}, err
	}
	state := sess.State()
	return state, sess.Close()
}

// Resolve maps a full id or unique id prefix to a stored template id.
func (s *Service) Resolve(ctx context.Context, id string) (string, error) {
	if s.Storage == nil {
		return "", ErrNoStorage
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("%w: empty id", ErrTemplateNotFound)
	}
	if _, err := s.Storage.Get(persist.Key(id)); err == nil {
		return id, nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return "", err
	}
	var matches []string
	for _, key := range s.Storage.Keys(ctx, persist.Key(id)) {
		matches = append(matches, strings.TrimPrefix(key, persist.KeyPrefix))
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, id)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: %s matches %s", ErrAmbiguousID, id, strings.Join(matches, ", "))
	}
}

// Templates returns every stored template, sorted by name then id.
func (s *Service) Templates(ctx context.Context) ([]persist.Snapshot, error) {
	if s.Storage == nil {
		return nil, ErrNoStorage
	}
	snaps, err := persist.List(ctx, s.Storage)
	if err != nil {
		s.logger().Warn("skipped unreadable templates", zap.Error(err))
	}
	sort.SliceStable(snaps, func(i, j int) bool {
		a, b := snaps[i].Template, snaps[j].Template
		if a.Name != b.Name {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
		return a.ID < b.ID
	})
	return snaps, nil
}

// Template returns the stored snapshot for id.
func (s *Service) Template(ctx context.Context, id string) (persist.Snapshot, error) {
	full, err := s.Resolve(ctx, id)
	if err != nil {
		return persist.Snapshot{}, err
	}
	return persist.Load(s.Storage, full)
}

// Remove deletes the stored template for id and returns the full id removed.
func (s *Service) Remove(ctx context.Context, id string) (string, error) {
	full, err := s.Resolve(ctx, id)
	if err != nil {
		return "", err
	}
	return full, persist.Remove(s.Storage, full)
}

// Watch subscribes to storage change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Storage == nil {
		return nil, ErrNoStorage
	}
	return s.Storage.Watch(ctx)
}
