package memory

import (
	"maps"
	"sync"

	"github.com/TheusHen/e2ee/e2ee/directory"
	"github.com/TheusHen/e2ee/e2ee/identity"
)

// Store is an in-memory key directory.
// It is useful for tests, examples and embedding in applications.
type Store struct {
	mu   sync.RWMutex
	keys map[identity.Fingerprint]directory.Record
}

func New() *Store {
	return &Store{keys: map[identity.Fingerprint]directory.Record{}}
}

func (s *Store) Announce(rec directory.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.Labels = maps.Clone(rec.Labels)
	s.keys[rec.Fingerprint] = rec
	return nil
}

func (s *Store) Lookup(fp identity.Fingerprint) (directory.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.keys[fp]
	if !ok {
		return directory.Record{}, directory.ErrNotFound
	}
	rec.Labels = maps.Clone(rec.Labels)
	return rec, nil
}

func (s *Store) List() ([]directory.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]directory.Record, 0, len(s.keys))
	for _, rec := range s.keys {
		rec.Labels = maps.Clone(rec.Labels)
		out = append(out, rec)
	}
	return out, nil
}
