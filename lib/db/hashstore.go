package db

import (
	"sort"
	"strings"
	"sync"

	"github.com/puzpuzpuz/xsync/v3"
)

// --------------------------------------------------------------------------
// Helper Types
// --------------------------------------------------------------------------

// Pair is one field/value mapping inside a hash.
type Pair struct {
	Field string
	Value string
}

// hashEntry holds one field->value map behind a per-entry lock.
type hashEntry struct {
	mu     sync.RWMutex
	fields map[string]string
}

// sortedFields returns the field names in sorted order.
// The caller must hold at least the read lock.
func (e *hashEntry) sortedFields() []string {
	result := make([]string, 0, len(e.fields))
	for f := range e.fields {
		result = append(result, f)
	}
	sort.Strings(result)
	return result
}

// --------------------------------------------------------------------------
// HashStore
// --------------------------------------------------------------------------

// HashStore owns all keyed string-to-string maps. Field names are unique
// within a hash; Set upserts, Del removes a single field.
type HashStore struct {
	ks      *KeySpace
	entries *xsync.MapOf[string, *hashEntry]
}

// NewHashStore creates an empty hash store bound to the given key space.
func NewHashStore(ks *KeySpace) *HashStore {
	return &HashStore{
		ks:      ks,
		entries: xsync.NewMapOf[string, *hashEntry](),
	}
}

func (s *HashStore) entry(name string) (*hashEntry, *Error) {
	e, ok := s.entries.Load(name)
	if !ok {
		return nil, ErrKeyNotFound(name)
	}
	return e, nil
}

// Create inserts a new empty hash under a globally unique name.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (s *HashStore) Create(name string) *Error {
	if !s.ks.Add(name) {
		return ErrKeyExists(name)
	}
	s.entries.Store(name, &hashEntry{fields: make(map[string]string)})
	return nil
}

// Del removes one field. An absent field is an error.
func (s *HashStore) Del(name, field string) *Error {
	e, err := s.entry(name)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.fields[field]; !ok {
		return ErrKeyNotFound(field)
	}
	delete(e.fields, field)
	return nil
}

// Exists reports whether a field is present.
func (s *HashStore) Exists(name, field string) (bool, *Error) {
	e, err := s.entry(name)
	if err != nil {
		return false, err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.fields[field]
	return ok, nil
}

// Get returns the value of one field. An absent field is an error.
func (s *HashStore) Get(name, field string) (string, *Error) {
	e, err := s.entry(name)
	if err != nil {
		return "", err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	value, ok := e.fields[field]
	if !ok {
		return "", ErrKeyNotFound(field)
	}
	return value, nil
}

// GetAll returns all field/value pairs. The order is unspecified but
// stable for the duration of the call.
func (s *HashStore) GetAll(name string) ([]Pair, *Error) {
	e, err := s.entry(name)
	if err != nil {
		return nil, err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	result := make([]Pair, 0, len(e.fields))
	for _, f := range e.sortedFields() {
		result = append(result, Pair{Field: f, Value: e.fields[f]})
	}
	return result, nil
}

// GetKeys returns all field names.
func (s *HashStore) GetKeys(name string) ([]string, *Error) {
	e, err := s.entry(name)
	if err != nil {
		return nil, err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.sortedFields(), nil
}

// Set upserts one field.
func (s *HashStore) Set(name, field, value string) *Error {
	e, err := s.entry(name)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.fields[field] = value
	return nil
}

// Len returns the number of fields.
func (s *HashStore) Len(name string) (uint32, *Error) {
	e, err := s.entry(name)
	if err != nil {
		return 0, err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return uint32(len(e.fields)), nil
}

// Search returns the fields whose names contain the query as a substring.
// The scan is linear over the fields; there is no index.
func (s *HashStore) Search(name, query string) ([]string, *Error) {
	e, err := s.entry(name)
	if err != nil {
		return nil, err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	result := make([]string, 0)
	for _, f := range e.sortedFields() {
		if strings.Contains(f, query) {
			result = append(result, f)
		}
	}
	return result, nil
}

func (s *HashStore) drop(name string) bool {
	_, ok := s.entries.LoadAndDelete(name)
	return ok
}

// --------------------------------------------------------------------------
// Snapshot Iteration
// --------------------------------------------------------------------------

// HashItem is one entry captured for a snapshot.
type HashItem struct {
	Name   string
	Fields []Pair
}

// Items captures a snapshot of all hashes, each copied under its read lock.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (s *HashStore) Items() []HashItem {
	items := make([]HashItem, 0, s.entries.Size())
	s.entries.Range(func(name string, e *hashEntry) bool {
		e.mu.RLock()
		fields := make([]Pair, 0, len(e.fields))
		for _, f := range e.sortedFields() {
			fields = append(fields, Pair{Field: f, Value: e.fields[f]})
		}
		e.mu.RUnlock()
		items = append(items, HashItem{Name: name, Fields: fields})
		return true
	})
	return items
}
