package db

import (
	"sort"
	"sync"

	"github.com/puzpuzpuz/xsync/v3"
)

// --------------------------------------------------------------------------
// Entry Type
// --------------------------------------------------------------------------

// setEntry holds one unordered set of unique strings behind a per-entry lock.
type setEntry struct {
	mu      sync.RWMutex
	members map[string]struct{}
}

// sortedMembers returns a sorted copy of the member list.
// The caller must hold at least the read lock.
func (e *setEntry) sortedMembers() []string {
	result := make([]string, 0, len(e.members))
	for m := range e.members {
		result = append(result, m)
	}
	sort.Strings(result)
	return result
}

// --------------------------------------------------------------------------
// SetStore
// --------------------------------------------------------------------------

// SetStore owns all keyed unordered sets of strings. Multi-set operations
// lock one set at a time in input order; there is deliberately no
// cross-key transactional guarantee.
type SetStore struct {
	ks      *KeySpace
	entries *xsync.MapOf[string, *setEntry]
}

// NewSetStore creates an empty set store bound to the given key space.
func NewSetStore(ks *KeySpace) *SetStore {
	return &SetStore{
		ks:      ks,
		entries: xsync.NewMapOf[string, *setEntry](),
	}
}

func (s *SetStore) entry(name string) (*setEntry, *Error) {
	e, ok := s.entries.Load(name)
	if !ok {
		return nil, ErrKeyNotFound(name)
	}
	return e, nil
}

// Create inserts a new empty set under a globally unique name.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (s *SetStore) Create(name string) *Error {
	if !s.ks.Add(name) {
		return ErrKeyExists(name)
	}
	s.entries.Store(name, &setEntry{members: make(map[string]struct{})})
	return nil
}

// Add inserts a value into the set. Adding a present value is a no-op.
func (s *SetStore) Add(name, value string) *Error {
	e, err := s.entry(name)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.members[value] = struct{}{}
	return nil
}

// Len returns the number of members.
func (s *SetStore) Len(name string) (uint32, *Error) {
	e, err := s.entry(name)
	if err != nil {
		return 0, err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return uint32(len(e.members)), nil
}

// Contains reports whether a value is a member.
func (s *SetStore) Contains(name, value string) (bool, *Error) {
	e, err := s.entry(name)
	if err != nil {
		return false, err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.members[value]
	return ok, nil
}

// GetAll returns all members. The order is unspecified but stable for the
// duration of the call.
func (s *SetStore) GetAll(name string) ([]string, *Error) {
	e, err := s.entry(name)
	if err != nil {
		return nil, err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.sortedMembers(), nil
}

// Pop removes a specific element from the set.
func (s *SetStore) Pop(name, value string) *Error {
	e, err := s.entry(name)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.members[value]; !ok {
		return ErrValueNotFound(value)
	}
	delete(e.members, value)
	return nil
}

// --------------------------------------------------------------------------
// Set Algebra
// --------------------------------------------------------------------------

// dedupe removes repeated names while keeping input order.
func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	result := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		result = append(result, name)
	}
	return result
}

// Intersection computes the intersection of the named sets. The first name
// seeds the scan, the remaining unique names narrow it in input order.
// A missing name fails the whole call. Empty input yields an empty list.
func (s *SetStore) Intersection(names []string) ([]string, *Error) {
	names = dedupe(names)
	if len(names) == 0 {
		return []string{}, nil
	}

	seedEntry, err := s.entry(names[0])
	if err != nil {
		return nil, err
	}
	seedEntry.mu.RLock()
	acc := make(map[string]struct{}, len(seedEntry.members))
	for m := range seedEntry.members {
		acc[m] = struct{}{}
	}
	seedEntry.mu.RUnlock()

	for _, name := range names[1:] {
		e, err := s.entry(name)
		if err != nil {
			return nil, err
		}
		e.mu.RLock()
		for m := range acc {
			if _, ok := e.members[m]; !ok {
				delete(acc, m)
			}
		}
		e.mu.RUnlock()
	}

	result := make([]string, 0, len(acc))
	for m := range acc {
		result = append(result, m)
	}
	sort.Strings(result)
	return result, nil
}

// Difference computes a \ b. The two names must differ.
func (s *SetStore) Difference(a, b string) ([]string, *Error) {
	if a == b {
		return nil, ErrInvalidArguments("cannot diff a set with itself")
	}
	ea, err := s.entry(a)
	if err != nil {
		return nil, err
	}
	eb, err := s.entry(b)
	if err != nil {
		return nil, err
	}

	ea.mu.RLock()
	left := ea.sortedMembers()
	ea.mu.RUnlock()

	eb.mu.RLock()
	result := make([]string, 0, len(left))
	for _, m := range left {
		if _, ok := eb.members[m]; !ok {
			result = append(result, m)
		}
	}
	eb.mu.RUnlock()

	return result, nil
}

// Union computes the union of the named sets after deduplicating the input.
// A missing name fails the whole call. Empty input yields an empty list.
func (s *SetStore) Union(names []string) ([]string, *Error) {
	names = dedupe(names)
	acc := make(map[string]struct{})
	for _, name := range names {
		e, err := s.entry(name)
		if err != nil {
			return nil, err
		}
		e.mu.RLock()
		for m := range e.members {
			acc[m] = struct{}{}
		}
		e.mu.RUnlock()
	}

	result := make([]string, 0, len(acc))
	for m := range acc {
		result = append(result, m)
	}
	sort.Strings(result)
	return result, nil
}

func (s *SetStore) drop(name string) bool {
	_, ok := s.entries.LoadAndDelete(name)
	return ok
}

// --------------------------------------------------------------------------
// Snapshot Iteration
// --------------------------------------------------------------------------

// SetItem is one entry captured for a snapshot.
type SetItem struct {
	Name    string
	Members []string
}

// Items captures a snapshot of all sets, each copied under its read lock.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (s *SetStore) Items() []SetItem {
	items := make([]SetItem, 0, s.entries.Size())
	s.entries.Range(func(name string, e *setEntry) bool {
		e.mu.RLock()
		members := e.sortedMembers()
		e.mu.RUnlock()
		items = append(items, SetItem{Name: name, Members: members})
		return true
	})
	return items
}
