// Package store is the local key/value storage the editor persists into. Keys
// are opaque strings; values are opaque bytes.
package store

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"
	"go.uber.org/zap"
)

// ErrNotFound is returned by Get for keys that have never been written or
// have been removed.
var ErrNotFound = errors.New("store: key not found")

// Storage is the local storage contract: last writer wins, no locking.
type Storage interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Remove(key string) error
	Keys(ctx context.Context, prefix string) []string
	Watch(ctx context.Context) (<-chan Event, error)
}

// Option configures disk storage.
type Option func(*diskStorage)

// WithLogger sets the logger watcher failures are reported to.
func WithLogger(l *zap.Logger) Option {
	return func(p *diskStorage) {
		if l != nil {
			p.log = l
		}
	}
}

// Load creates a Storage backed by diskv using the provided config.
func Load(cfg Config, opts ...Option) (Storage, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path required")
	}
	p := &diskStorage{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
		basePath: basePath,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

type diskStorage struct {
	d        *diskv.Diskv
	basePath string
	log      *zap.Logger
}

func (p *diskStorage) Get(key string) ([]byte, error) {
	if !p.d.Has(key) {
		return nil, fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	val, err := p.d.Read(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("store: read %s: %w", key, err)
	}
	return val, nil
}

func (p *diskStorage) Set(key string, value []byte) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("store: key required")
	}
	if err := p.d.Write(key, value); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (p *diskStorage) Remove(key string) error {
	if !p.d.Has(key) {
		return fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	if err := p.d.Erase(key); err != nil {
		return fmt.Errorf("store: erase %s: %w", key, err)
	}
	return nil
}

func (p *diskStorage) Keys(ctx context.Context, prefix string) []string {
	var keys []string
	for key := range p.d.KeysPrefix(prefix, ctx.Done()) {
		if key == "" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Keys are stored base64url encoded so any string is a valid file name, and
// sharded by the first two encoded characters to keep directories small.
func keyToPathTransform(s string) *diskv.PathKey {
	encoded := base64.RawURLEncoding.EncodeToString([]byte(s))
	return &diskv.PathKey{
		Path:     []string{shardOf(encoded)},
		FileName: encoded,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return decodeKey(pathKey.FileName)
}

func shardOf(encoded string) string {
	if len(encoded) < 2 {
		return "_"
	}
	return encoded[:2]
}

func decodeKey(encoded string) string {
	key, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return ""
	}
	return string(key)
}
