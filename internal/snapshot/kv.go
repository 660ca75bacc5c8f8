package snapshot

import (
	"context"
	"fmt"
	"time"

	"ghfavorites/internal/models"
)

// KV is the subset of a Fiber storage used for snapshots.
// github.com/gofiber/storage/redis/v3 satisfies it.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, val []byte, exp time.Duration) error
	Close() error
}

// KVStore keeps the snapshot under a single key, like browser local storage.
type KVStore struct {
	kv  KV
	key string
}

// NewKVStore creates a store writing to key in kv.
func NewKVStore(kv KV, key string) *KVStore {
	return &KVStore{kv: kv, key: key}
}

// Load reads the snapshot. A missing key is an empty snapshot.
func (s *KVStore) Load(ctx context.Context) ([]models.Record, error) {
	data, err := s.kv.Get(s.key)
	if err != nil {
		return nil, fmt.Errorf("get snapshot %q: %w", s.key, err)
	}
	return Decode(data)
}

// Save replaces the snapshot. Entries never expire.
func (s *KVStore) Save(ctx context.Context, records []models.Record) error {
	data, err := Encode(records)
	if err != nil {
		return err
	}
	if err := s.kv.Set(s.key, data, 0); err != nil {
		return fmt.Errorf("set snapshot %q: %w", s.key, err)
	}
	return nil
}

// Close closes the underlying storage.
func (s *KVStore) Close() error {
	return s.kv.Close()
}
