package db

import "errors"

// Domain-level database error sentinels.
var (
	ErrSnapshotNotFound = errors.New("snapshot not found")
)
