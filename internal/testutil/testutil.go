// Package testutil provides test utilities and helpers.
package testutil

import (
	"context"
	"os"
	"sync"
	"testing"

	"ghfavorites/internal/db"
	"ghfavorites/internal/lookup"
	"ghfavorites/internal/models"
)

// NotFoundHandle is the handle StubSource reports as missing.
const NotFoundHandle = "nonexistent"

// StubSource answers every handle except NotFoundHandle with a profile whose
// name is "Name of <handle>". Fail, when set, is returned for every call.
type StubSource struct {
	mu    sync.Mutex
	Calls map[string]int
	Fail  error
}

// NewStubSource creates an empty StubSource.
func NewStubSource() *StubSource {
	return &StubSource{Calls: make(map[string]int)}
}

// Fetch implements lookup.Source.
func (s *StubSource) Fetch(ctx context.Context, key string) (*models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls[key]++
	if s.Fail != nil {
		return nil, s.Fail
	}
	if key == NotFoundHandle {
		return nil, lookup.ErrNotFound
	}
	return &models.Record{
		Login: key,
		Profile: map[string]any{
			"name": "Name of " + key,
			"blog": "https://example.com/" + key,
		},
	}, nil
}

// Total returns the number of Fetch calls across all handles.
func (s *StubSource) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.Calls {
		n += c
	}
	return n
}

// MemStore is an in-memory snapshot.Store.
type MemStore struct {
	mu      sync.Mutex
	Records []models.Record
	Saves   int
}

// Load implements snapshot.Store.
func (m *MemStore) Load(ctx context.Context) ([]models.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Records, nil
}

// Save implements snapshot.Store.
func (m *MemStore) Save(ctx context.Context, records []models.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Records = records
	m.Saves++
	return nil
}

// Snapshot returns the last saved records.
func (m *MemStore) Snapshot() []models.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Records
}

// TestDB creates a test database connection and returns a cleanup function.
// Skips the test unless TEST_DATABASE_URL is set.
func TestDB(t *testing.T) (*db.DB, string, func()) {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("Skipping integration test: TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	database, err := db.Open(ctx, connString)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	cleanup := func() {
		database.Pool.Exec(ctx, "DELETE FROM favorite_snapshots")
		database.Close()
	}

	return database, connString, cleanup
}
