package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Memory is an in-process Storage. It backs tests and --ephemeral sessions.
type Memory struct {
	mu       sync.Mutex
	items    map[string][]byte
	watchers map[chan Event]struct{}
}

// NewMemory returns an empty Memory storage.
func NewMemory() *Memory {
	return &Memory{
		items:    make(map[string][]byte),
		watchers: make(map[chan Event]struct{}),
	}
}

func (m *Memory) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[key]
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	return append([]byte(nil), v...), nil
}

func (m *Memory) Set(key string, value []byte) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("store: key required")
	}
	m.mu.Lock()
	m.items[key] = append([]byte(nil), value...)
	m.notifyLocked(Event{Type: EventKeyChanged, Key: key})
	m.mu.Unlock()
	return nil
}

func (m *Memory) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[key]; !ok {
		return fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	delete(m.items, key)
	m.notifyLocked(Event{Type: EventKeyChanged, Key: key})
	return nil
}

func (m *Memory) Keys(_ context.Context, prefix string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.items))
	for k := range m.items {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Watch streams an event per Set or Remove until ctx is done.
func (m *Memory) Watch(ctx context.Context) (<-chan Event, error) {
	ch := make(chan Event, 64)
	m.mu.Lock()
	m.watchers[ch] = struct{}{}
	m.mu.Unlock()

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		delete(m.watchers, ch)
		close(ch)
		m.mu.Unlock()
	}()
	return ch, nil
}

func (m *Memory) notifyLocked(ev Event) {
	for ch := range m.watchers {
		select {
		case ch <- ev:
		default:
		}
	}
}
