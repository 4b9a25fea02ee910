package fixture

import (
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mockforge/mockforge/pkg/metrics"
	"github.com/mockforge/mockforge/pkg/protocol"
)

// Store is a thread-safe in-memory fixture collection with deterministic
// matching. Fixtures are immutable once stored; replace by re-setting the
// same ID.
type Store struct {
	mu       sync.RWMutex
	fixtures map[string]*Fixture

	log    *slog.Logger
	hits   *metrics.Counter
	misses *metrics.Counter
	loaded *metrics.Gauge
}

// NewStore creates an empty fixture store.
func NewStore() *Store {
	return &Store{
		fixtures: make(map[string]*Fixture),
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// SetLogger sets the structured logger for store events.
func (s *Store) SetLogger(log *slog.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if log != nil {
		s.log = log
	}
}

// Instrument registers match counters and a loaded-fixtures gauge on the
// given metrics registry.
func (s *Store) Instrument(m *metrics.Registry) {
	hits := m.NewCounter(
		"mockforge_fixture_match_hits_total",
		"Requests answered by a fixture, by protocol.",
		"protocol",
	)
	misses := m.NewCounter(
		"mockforge_fixture_match_misses_total",
		"Requests no fixture matched, by protocol.",
		"protocol",
	)
	loaded := m.NewGauge(
		"mockforge_fixtures_loaded",
		"Number of fixtures currently stored.",
	)

	s.mu.Lock()
	s.hits = hits
	s.misses = misses
	s.loaded = loaded
	count := len(s.fixtures)
	s.mu.Unlock()

	_ = loaded.Set(float64(count))
}

// Set stores or replaces a fixture after validating it. An empty ID is
// assigned a UUID; an empty CreatedAt is stamped with the current time.
func (s *Store) Set(f *Fixture) error {
	if f == nil {
		return nil
	}
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now()
	}
	if err := f.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.fixtures[f.ID] = f
	count := len(s.fixtures)
	log := s.log
	loaded := s.loaded
	s.mu.Unlock()

	if loaded != nil {
		_ = loaded.Set(float64(count))
	}
	log.Debug("fixture stored", "id", f.ID, "protocol", f.Protocol, "priority", f.Priority)
	return nil
}

// Get retrieves a fixture by ID. Returns nil if not found.
func (s *Store) Get(id string) *Fixture {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fixtures[id]
}

// Delete removes a fixture by ID. Returns true if deleted.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	_, exists := s.fixtures[id]
	if exists {
		delete(s.fixtures, id)
	}
	count := len(s.fixtures)
	loaded := s.loaded
	s.mu.Unlock()

	if exists && loaded != nil {
		_ = loaded.Set(float64(count))
	}
	return exists
}

// Exists checks if a fixture with the given ID exists.
func (s *Store) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.fixtures[id]
	return ok
}

// Count returns the number of stored fixtures.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.fixtures)
}

// Clear removes all fixtures.
func (s *Store) Clear() {
	s.mu.Lock()
	s.fixtures = make(map[string]*Fixture)
	loaded := s.loaded
	s.mu.Unlock()

	if loaded != nil {
		_ = loaded.Set(0)
	}
}

// List returns all fixtures sorted by priority (descending) then ID
// (ascending). The slice is a copy; the fixtures are shared.
func (s *Store) List() []*Fixture {
	s.mu.RLock()
	result := make([]*Fixture, 0, len(s.fixtures))
	for _, f := range s.fixtures {
		result = append(result, f)
	}
	s.mu.RUnlock()

	sortFixtures(result)
	return result
}

// ListByProtocol returns all fixtures for a protocol, sorted as List.
func (s *Store) ListByProtocol(p protocol.Protocol) []*Fixture {
	s.mu.RLock()
	var result []*Fixture
	for _, f := range s.fixtures {
		if f.Protocol == p {
			result = append(result, f)
		}
	}
	s.mu.RUnlock()

	sortFixtures(result)
	return result
}

// ListByTag returns all fixtures carrying the tag, sorted as List.
func (s *Store) ListByTag(tag string) []*Fixture {
	s.mu.RLock()
	var result []*Fixture
	for _, f := range s.fixtures {
		for _, t := range f.Tags {
			if t == tag {
				result = append(result, f)
				break
			}
		}
	}
	s.mu.RUnlock()

	sortFixtures(result)
	return result
}

// Match returns the best enabled fixture for the request, or nil when none
// matches. Selection is deterministic: highest priority wins; among equal
// priorities the highest match specificity score wins; remaining ties break
// on lexicographically smallest fixture ID. Incidental map order never
// influences the result.
func (s *Store) Match(req *protocol.ProtocolRequest) *Fixture {
	if req == nil {
		return nil
	}
	results := s.matchAll(req)
	if len(results) == 0 {
		s.countMiss(req)
		return nil
	}
	s.countHit(req)
	return results[0].fixture
}

// MatchAll returns every enabled fixture matching the request, in the same
// deterministic order Match selects from.
func (s *Store) MatchAll(req *protocol.ProtocolRequest) []*Fixture {
	results := s.matchAll(req)
	fixtures := make([]*Fixture, len(results))
	for i, r := range results {
		fixtures[i] = r.fixture
	}
	return fixtures
}

type matchResult struct {
	fixture *Fixture
	score   int
}

func (s *Store) matchAll(req *protocol.ProtocolRequest) []matchResult {
	if req == nil {
		return nil
	}

	s.mu.RLock()
	candidates := make([]*Fixture, 0, len(s.fixtures))
	for _, f := range s.fixtures {
		if f.Protocol == req.Protocol && f.IsEnabled() {
			candidates = append(candidates, f)
		}
	}
	s.mu.RUnlock()

	// Scoring runs outside the lock; fixtures are immutable once stored
	var results []matchResult
	for _, f := range candidates {
		if score := f.MatchScore(req); score > 0 {
			results = append(results, matchResult{fixture: f, score: score})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.fixture.Priority != b.fixture.Priority {
			return a.fixture.Priority > b.fixture.Priority
		}
		if a.score != b.score {
			return a.score > b.score
		}
		return a.fixture.ID < b.fixture.ID
	})

	return results
}

func (s *Store) countHit(req *protocol.ProtocolRequest) {
	s.mu.RLock()
	hits := s.hits
	s.mu.RUnlock()
	if hits == nil {
		return
	}
	if vec, err := hits.WithLabels(req.Protocol.String()); err == nil {
		_ = vec.Inc()
	}
}

func (s *Store) countMiss(req *protocol.ProtocolRequest) {
	s.mu.RLock()
	misses := s.misses
	log := s.log
	s.mu.RUnlock()

	log.Debug("no fixture matched",
		"protocol", req.Protocol,
		"operation", req.Operation,
		"path", req.Path,
	)
	if misses == nil {
		return
	}
	if vec, err := misses.WithLabels(req.Protocol.String()); err == nil {
		_ = vec.Inc()
	}
}

func sortFixtures(fixtures []*Fixture) {
	sort.Slice(fixtures, func(i, j int) bool {
		if fixtures[i].Priority != fixtures[j].Priority {
			return fixtures[i].Priority > fixtures[j].Priority
		}
		return fixtures[i].ID < fixtures[j].ID
	})
}
