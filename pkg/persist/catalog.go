package persist

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"tableflip.dev/storyboard/pkg/store"
)

// Load decodes the snapshot stored for id.
func Load(s store.Storage, id string) (Snapshot, error) {
	key := Key(id)
	data, err := s.Get(key)
	if err != nil {
		return Snapshot{}, fmt.Errorf("persist: load %s: %w", key, err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("persist: decode %s: %w", key, err)
	}
	if err := snap.Template.Validate(); err != nil {
		return Snapshot{}, fmt.Errorf("%s: %w", key, err)
	}
	return snap, nil
}

// List returns every decodable snapshot in s, ordered by key. Entries that
// fail to decode are reported in the returned error but do not stop the scan.
func List(ctx context.Context, s store.Storage) ([]Snapshot, error) {
	var (
		out    []Snapshot
		failed []string
	)
	for _, key := range s.Keys(ctx, KeyPrefix) {
		snap, err := Load(s, strings.TrimPrefix(key, KeyPrefix))
		if err != nil {
			failed = append(failed, key)
			continue
		}
		out = append(out, snap)
	}
	if len(failed) > 0 {
		return out, fmt.Errorf("persist: %d unreadable snapshot(s): %s", len(failed), strings.Join(failed, ", "))
	}
	return out, nil
}

// Remove deletes the snapshot stored for id.
func Remove(s store.Storage, id string) error {
	if err := s.Remove(Key(id)); err != nil {
		return fmt.Errorf("persist: remove %s: %w", Key(id), err)
	}
	return nil
}
