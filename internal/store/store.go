// Package store holds the authoritative in-memory candidate list and
// derives every dashboard view from it. The list is the single source
// of truth while the server runs; durability comes from explicit
// export and the backup scheduler, not from the store.
package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/agilec-tools/touchpoint/internal/candidate"
)

var (
	// ErrNotFound is returned when a mutation names an unknown id.
	ErrNotFound = errors.New("store: candidate not found")
	// ErrDuplicateID is returned when Add would collide with an
	// existing record.
	ErrDuplicateID = errors.New("store: duplicate candidate id")
)

// Store is a mutex-guarded candidate list. The HTTP server is the
// single logical writer; the lock keeps concurrent reads safe and the
// race detector honest. Construct with New and pass by reference.
type Store struct {
	mu   sync.RWMutex
	list []candidate.Candidate
}

func New() *Store {
	return &Store{}
}

// Snapshot returns a deep copy of the full list, placeholders and
// archived records included. View functions operate on snapshots so
// they stay pure.
func (s *Store) Snapshot() []candidate.Candidate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]candidate.Candidate, len(s.list))
	for i, c := range s.list {
		out[i] = c.Clone()
	}
	return out
}

// Len reports the total number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.list)
}

// Get returns a copy of the record with the given id.
func (s *Store) Get(id string) (candidate.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return candidate.Candidate{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.list[i].Clone(), nil
}

// Add appends a new record. The id must not already exist.
func (s *Store) Add(c candidate.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(c.ID) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateID, c.ID)
	}
	s.list = append(s.list, c.Clone())
	return nil
}

// Update replaces the record with c.ID wholesale.
func (s *Store) Update(c candidate.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(c.ID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, c.ID)
	}
	s.list[i] = c.Clone()
	return nil
}

// SetNextContact schedules (or clears, with a nil date) the next
// contact for a record, stamping last-touch and status as a side
// effect. Returns the updated record.
func (s *Store) SetNextContact(id string, date *time.Time, now time.Time) (candidate.Candidate, error) {
	return s.mutate(id, func(c candidate.Candidate) candidate.Candidate {
		return candidate.ApplyNextContact(c, date, now)
	})
}

// SetCategory assigns a category and keeps the color consistent with
// it. Returns the updated record.
func (s *Store) SetCategory(id, category string) (candidate.Candidate, error) {
	return s.mutate(id, func(c candidate.Candidate) candidate.Candidate {
		return candidate.WithCategory(c, category)
	})
}

// SetArchived sets the archived flag. Returns the updated record.
func (s *Store) SetArchived(id string, archived bool) (candidate.Candidate, error) {
	return s.mutate(id, func(c candidate.Candidate) candidate.Candidate {
		out := c.Clone()
		out.Archived = archived
		return out
	})
}

// ToggleArchive flips the archived flag. Returns the updated record.
func (s *Store) ToggleArchive(id string) (candidate.Candidate, error) {
	return s.mutate(id, func(c candidate.Candidate) candidate.Candidate {
		out := c.Clone()
		out.Archived = !out.Archived
		return out
	})
}

// ReplaceAll swaps the entire list atomically. Import uses this so a
// successful parse replaces state in one step and a failed parse never
// reaches the store at all.
func (s *Store) ReplaceAll(list []candidate.Candidate) {
	clone := make([]candidate.Candidate, len(list))
	for i, c := range list {
		clone[i] = c.Clone()
	}
	s.mu.Lock()
	s.list = clone
	s.mu.Unlock()
}

func (s *Store) mutate(id string, fn func(candidate.Candidate) candidate.Candidate) (candidate.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return candidate.Candidate{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.list[i] = fn(s.list[i])
	return s.list[i].Clone(), nil
}

// indexOf must be called with the lock held.
func (s *Store) indexOf(id string) int {
	for i, c := range s.list {
		if c.ID == id {
			return i
		}
	}
	return -1
}
