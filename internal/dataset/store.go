package dataset

import (
	"errors"
	"sync/atomic"
)

// ErrDatasetNotLoaded is returned when a query arrives before any dataset
// has been ingested. It clears process-wide once a dataset is loaded.
var ErrDatasetNotLoaded = errors.New("dataset not loaded")

// Store holds the current dataset snapshot behind an atomically swapped
// reference: readers see either the old complete snapshot or the new
// complete one, never a partial rebuild.
type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Snapshot returns the current dataset, or ErrDatasetNotLoaded if nothing
// has been ingested yet.
func (s *Store) Snapshot() (*Snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, ErrDatasetNotLoaded
	}
	return snap, nil
}

// Replace swaps in a new snapshot atomically.
func (s *Store) Replace(snap *Snapshot) {
	s.current.Store(snap)
}

// Loaded reports whether a dataset is available.
func (s *Store) Loaded() bool {
	return s.current.Load() != nil
}
