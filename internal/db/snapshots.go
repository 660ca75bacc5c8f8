package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// GetSnapshot returns the serialized records stored under name.
// Returns ErrSnapshotNotFound if nothing has been saved yet.
func (d *DB) GetSnapshot(ctx context.Context, name string) ([]byte, error) {
	var records []byte
	err := d.Pool.QueryRow(ctx, `
		SELECT records FROM favorite_snapshots WHERE name = $1
	`, name).Scan(&records)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}
	return records, nil
}

// PutSnapshot replaces the serialized records stored under name.
func (d *DB) PutSnapshot(ctx context.Context, name string, records []byte) error {
	_, err := d.Pool.Exec(ctx, `
		INSERT INTO favorite_snapshots (name, records, saved_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (name) DO UPDATE
		SET records = EXCLUDED.records, saved_at = NOW()
	`, name, string(records))
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}
