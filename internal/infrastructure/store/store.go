// Package store holds the canonical in-memory record set for the memory-
// and file-backed deployments: a slot sequence indexed by record identifier,
// with deleted slots tombstoned in place so the identifiers of surviving
// records never move.
package store

import (
	"user-directory-api/internal/domain/user"
)

// Store is not safe for concurrent use; the directory service serializes
// every operation that reaches it.
type Store struct {
	slots []*user.User
}

func New() *Store { return &Store{} }

// Insert places u in the lowest tombstoned slot, appending a new slot when
// none is free, and returns the slot's identifier. Uniqueness is the
// caller's concern, checked before this point.
func (s *Store) Insert(u user.User) user.ID {
	for i, slot := range s.slots {
		if slot == nil {
			c := u
			s.slots[i] = &c
			return user.ID(i)
		}
	}
	c := u
	s.slots = append(s.slots, &c)
	return user.ID(len(s.slots) - 1)
}

// Get returns a copy of the record in slot id, or ErrNotFound when id is out
// of range or the slot is tombstoned.
func (s *Store) Get(id user.ID) (user.User, error) {
	i := int(id)
	if i < 0 || i >= len(s.slots) || s.slots[i] == nil {
		return user.User{}, user.ErrNotFound
	}
	return *s.slots[i], nil
}

// Replace overwrites a live slot in place; the identifier is unchanged.
func (s *Store) Replace(id user.ID, u user.User) error {
	i := int(id)
	if i < 0 || i >= len(s.slots) || s.slots[i] == nil {
		return user.ErrNotFound
	}
	c := u
	s.slots[i] = &c
	return nil
}

// Patch merges the recognized fields of p into the record in slot id and
// returns a copy of the result. Unrecognized field names are dropped
// silently.
func (s *Store) Patch(id user.ID, p user.Patch) (user.User, error) {
	i := int(id)
	if i < 0 || i >= len(s.slots) || s.slots[i] == nil {
		return user.User{}, user.ErrNotFound
	}
	p.Apply(s.slots[i])
	return *s.slots[i], nil
}

// Tombstone marks slot id deleted. The slot sequence never shrinks, which
// is what keeps the remaining identifiers stable.
func (s *Store) Tombstone(id user.ID) error {
	i := int(id)
	if i < 0 || i >= len(s.slots) || s.slots[i] == nil {
		return user.ErrNotFound
	}
	s.slots[i] = nil
	return nil
}

// Scan returns a copy of every live record in ascending identifier order,
// a consistent snapshot of the store at call time.
func (s *Store) Scan() user.Records {
	recs := make(user.Records, 0, len(s.slots))
	for i, slot := range s.slots {
		if slot == nil {
			continue
		}
		recs = append(recs, user.Stored{ID: user.ID(i), User: *slot})
	}
	return recs
}

// ReplaceAll rebuilds the store from records loaded out of a mirror; they
// become slots 0..n-1. Tombstones never survive a reload because mirrors
// persist live records only.
func (s *Store) ReplaceAll(records []user.User) {
	s.slots = make([]*user.User, len(records))
	for i := range records {
		c := records[i]
		s.slots[i] = &c
	}
}
