// Package snapshot persists the favorites list as a flat JSON array of records.
//
// Backends share one format so a snapshot written by one can be copied into
// another. There is no versioning or schema migration of the payload.
package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"ghfavorites/internal/models"
)

// Store loads and saves the full favorites snapshot.
type Store interface {
	Load(ctx context.Context) ([]models.Record, error)
	Save(ctx context.Context, records []models.Record) error
}

// Backend is a Store holding resources that must be released.
type Backend interface {
	Store
	io.Closer
}

// Encode serializes records as a JSON array. A nil slice encodes as [].
func Encode(records []models.Record) ([]byte, error) {
	if records == nil {
		records = []models.Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// Decode parses a JSON array of records. Empty input and null decode to nil.
func Decode(data []byte) ([]models.Record, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}
	var records []models.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return records, nil
}
