// Package favorites decides whether a profile lookup is served from the
// stored favorites or fetched again, and keeps the favorites snapshot current.
//
// A Service models one interactive session. It holds no lock: callers that
// can run concurrently must serialize access to it.
package favorites

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"ghfavorites/internal/lookup"
	"ghfavorites/internal/models"
	"ghfavorites/internal/snapshot"
)

// DefaultStaleThreshold is how long a stored favorite is served without re-fetching.
const DefaultStaleThreshold = 3000 * time.Millisecond

var (
	ErrEmptyKey       = errors.New("search key is empty")
	ErrNoActiveResult = errors.New("no active result")
	ErrNotFavorite    = errors.New("not a favorite")
	errNoRecord       = errors.New("lookup returned no record")
)

// State is the externally visible phase of a resolution cycle.
type State int

const (
	StateIdle State = iota
	StateResolving
)

func (s State) String() string {
	if s == StateResolving {
		return "resolving"
	}
	return "idle"
}

// Observer is notified of every resolve outcome.
type Observer interface {
	ObserveResolve(outcome string, elapsed time.Duration)
}

// Service is the lookup cache over the favorites store.
type Service struct {
	snapshots      snapshot.Store
	source         lookup.Source
	staleThreshold time.Duration
	now            func() time.Time
	logger         *slog.Logger
	observer       Observer

	favorites map[string]*models.Record
	active    models.ActiveResult
	state     State
}

// Option configures a Service.
type Option func(*Service)

// WithStaleThreshold overrides DefaultStaleThreshold.
func WithStaleThreshold(d time.Duration) Option {
	return func(s *Service) { s.staleThreshold = d }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithObserver registers a resolve observer, typically the metrics recorder.
func WithObserver(o Observer) Option {
	return func(s *Service) { s.observer = o }
}

// NewService creates a Service with an empty store. Call Load to restore the
// persisted favorites.
func NewService(store snapshot.Store, source lookup.Source, opts ...Option) *Service {
	s := &Service{
		snapshots:      store,
		source:         source,
		staleThreshold: DefaultStaleThreshold,
		now:            time.Now,
		logger:         slog.Default(),
		favorites:      make(map[string]*models.Record),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory store with the persisted snapshot.
// Later duplicates of a login win.
func (s *Service) Load(ctx context.Context) error {
	records, err := s.snapshots.Load(ctx)
	if err != nil {
		return fmt.Errorf("load favorites: %w", err)
	}

	favorites := make(map[string]*models.Record, len(records))
	for i := range records {
		favorites[records[i].Login] = &records[i]
	}
	s.favorites = favorites

	s.logger.Info("favorites loaded", "count", len(favorites))
	return nil
}

// Resolve returns the profile for key, from the store when the stored copy is
// no older than the stale threshold, otherwise from exactly one upstream
// lookup. The active result and error are updated either way and the pending
// search is cleared on every exit path.
//
// On a refetch of a stored favorite only its LastFetchedAt changes; the fresh
// profile becomes the active result without replacing the stored copy.
func (s *Service) Resolve(ctx context.Context, key string) (*models.Record, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}

	s.state = StateResolving
	defer func() {
		s.active.Search = ""
		s.state = StateIdle
	}()

	stored, found := s.favorites[key]
	if found && stored.Age(s.now()) <= s.staleThreshold {
		s.logger.Debug("serving stored favorite", "login", key, "age", stored.Age(s.now()))
		s.active.Record = stored
		s.active.Err = nil
		s.observe(models.OutcomeCacheHit, 0)
		return stored, nil
	}

	s.active.Record = nil
	s.active.Err = nil

	start := time.Now()
	rec, err := s.source.Fetch(ctx, key)
	elapsed := time.Since(start)
	if err == nil && rec == nil {
		err = errNoRecord
	}
	if err != nil {
		s.active.Err = err
		if errors.Is(err, lookup.ErrNotFound) {
			s.observe(models.OutcomeNotFound, elapsed)
		} else {
			s.observe(models.OutcomeError, elapsed)
			s.logger.Warn("profile lookup failed", "login", key, "error", err)
		}
		return nil, err
	}

	if found {
		stored.LastFetchedAt = s.now()
	}
	s.active.Record = rec
	s.observe(models.OutcomeFetched, elapsed)
	s.logger.Debug("profile fetched", "login", key, "favorite", found, "elapsed", elapsed)
	return rec, nil
}

// AddFavorite stamps rec as fetched now, stores it under its login and
// persists the snapshot before returning.
func (s *Service) AddFavorite(ctx context.Context, rec *models.Record) error {
	if rec == nil || rec.Login == "" {
		return models.ErrMissingLogin
	}
	rec.LastFetchedAt = s.now()
	s.favorites[rec.Login] = rec
	return s.persist(ctx)
}

// AddActive adds the active result as a favorite.
func (s *Service) AddActive(ctx context.Context) error {
	if s.active.Record == nil {
		return ErrNoActiveResult
	}
	return s.AddFavorite(ctx, s.active.Record)
}

// RemoveFavorite deletes key from the store, if present, and persists the snapshot.
func (s *Service) RemoveFavorite(ctx context.Context, key string) error {
	delete(s.favorites, key)
	return s.persist(ctx)
}

// IsFavorite reports whether key is stored.
func (s *Service) IsFavorite(key string) bool {
	_, ok := s.favorites[key]
	return ok
}

// ShowFavorite makes a stored favorite the active result without a lookup.
func (s *Service) ShowFavorite(key string) (*models.Record, error) {
	rec, ok := s.favorites[key]
	if !ok {
		return nil, ErrNotFavorite
	}
	s.active.Record = rec
	s.active.Err = nil
	return rec, nil
}

// SetSearch records the pending search key.
func (s *Service) SetSearch(key string) {
	s.active.Search = key
}

// Active returns the active result.
func (s *Service) Active() models.ActiveResult {
	return s.active
}

// State returns the current resolution phase.
func (s *Service) State() State {
	return s.state
}

// Len returns the number of stored favorites.
func (s *Service) Len() int {
	return len(s.favorites)
}

// Favorites returns copies of the stored records ordered by login.
func (s *Service) Favorites() []models.Record {
	out := make([]models.Record, 0, len(s.favorites))
	for _, rec := range s.favorites {
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Login < out[j].Login })
	return out
}

func (s *Service) persist(ctx context.Context) error {
	if err := s.snapshots.Save(ctx, s.Favorites()); err != nil {
		return fmt.Errorf("save favorites: %w", err)
	}
	return nil
}

func (s *Service) observe(outcome string, elapsed time.Duration) {
	if s.observer != nil {
		s.observer.ObserveResolve(outcome, elapsed)
	}
}
