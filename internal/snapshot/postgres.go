package snapshot

import (
	"context"
	"errors"

	"ghfavorites/internal/db"
	"ghfavorites/internal/models"
)

// PostgresStore keeps the snapshot as one JSONB row.
type PostgresStore struct {
	db   *db.DB
	name string
}

// NewPostgresStore creates a store writing the row called name.
func NewPostgresStore(database *db.DB, name string) *PostgresStore {
	return &PostgresStore{db: database, name: name}
}

// Load reads the snapshot. A missing row is an empty snapshot.
func (s *PostgresStore) Load(ctx context.Context) ([]models.Record, error) {
	data, err := s.db.GetSnapshot(ctx, s.name)
	if err != nil {
		if errors.Is(err, db.ErrSnapshotNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return Decode(data)
}

// Save replaces the snapshot row.
func (s *PostgresStore) Save(ctx context.Context, records []models.Record) error {
	data, err := Encode(records)
	if err != nil {
		return err
	}
	return s.db.PutSnapshot(ctx, s.name, data)
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	s.db.Close()
	return nil
}
