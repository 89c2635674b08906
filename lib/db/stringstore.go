package db

import (
	"sync"

	"github.com/puzpuzpuz/xsync/v3"
)

// --------------------------------------------------------------------------
// Entry Type
// --------------------------------------------------------------------------

// stringEntry holds one mutable byte-string behind a per-entry lock.
// Mutations take the write lock for the duration of the call, readers
// take the read lock, so map growth never blocks unrelated entries.
type stringEntry struct {
	mu   sync.RWMutex
	data []byte
}

// --------------------------------------------------------------------------
// StringStore
// --------------------------------------------------------------------------

// StringStore owns all keyed mutable byte-strings. Keys are reserved in
// the shared KeySpace before an entry is inserted, so a name can never be
// claimed by two stores at once.
type StringStore struct {
	ks      *KeySpace
	entries *xsync.MapOf[string, *stringEntry]
}

// NewStringStore creates an empty string store bound to the given key space.
func NewStringStore(ks *KeySpace) *StringStore {
	return &StringStore{
		ks:      ks,
		entries: xsync.NewMapOf[string, *stringEntry](),
	}
}

// entry resolves a live entry or reports KEY_NOT_FOUND.
func (s *StringStore) entry(name string) (*stringEntry, *Error) {
	e, ok := s.entries.Load(name)
	if !ok {
		return nil, ErrKeyNotFound(name)
	}
	return e, nil
}

// Create inserts a new string under a globally unique name.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (s *StringStore) Create(name, value string) *Error {
	if !s.ks.Add(name) {
		return ErrKeyExists(name)
	}
	s.entries.Store(name, &stringEntry{data: []byte(value)})
	return nil
}

// Get returns the current value.
func (s *StringStore) Get(name string) (string, *Error) {
	e, err := s.entry(name)
	if err != nil {
		return "", err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return string(e.data), nil
}

// Exists reports membership without raising an error for absent names.
func (s *StringStore) Exists(name string) bool {
	_, ok := s.entries.Load(name)
	return ok
}

// Length returns the byte length of the value.
func (s *StringStore) Length(name string) (uint32, *Error) {
	e, err := s.entry(name)
	if err != nil {
		return 0, err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return uint32(len(e.data)), nil
}

// Substring returns the bytes in [start, end). Requires start <= end <= length.
func (s *StringStore) Substring(name string, start, end uint32) (string, *Error) {
	e, err := s.entry(name)
	if err != nil {
		return "", err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	if err := checkRange(start, end, uint32(len(e.data))); err != nil {
		return "", err
	}
	return string(e.data[start:end]), nil
}

// Append concatenates a suffix to the value.
func (s *StringStore) Append(name, suffix string) *Error {
	e, err := s.entry(name)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.data = append(e.data, suffix...)
	return nil
}

// Prepend concatenates a prefix to the value.
func (s *StringStore) Prepend(name, prefix string) *Error {
	e, err := s.entry(name)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	buf := make([]byte, 0, len(prefix)+len(e.data))
	buf = append(buf, prefix...)
	buf = append(buf, e.data...)
	e.data = buf
	return nil
}

// Insert splices a value in at the given byte offset. Requires index <= length.
func (s *StringStore) Insert(name, value string, index uint32) *Error {
	e, err := s.entry(name)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if index > uint32(len(e.data)) {
		return ErrInvalidArguments("index out of range")
	}
	buf := make([]byte, 0, len(e.data)+len(value))
	buf = append(buf, e.data[:index]...)
	buf = append(buf, value...)
	buf = append(buf, e.data[index:]...)
	e.data = buf
	return nil
}

// Trim erases the bytes in [start, end). Requires start <= end <= length.
func (s *StringStore) Trim(name string, start, end uint32) *Error {
	e, err := s.entry(name)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := checkRange(start, end, uint32(len(e.data))); err != nil {
		return err
	}
	e.data = append(e.data[:start], e.data[end:]...)
	return nil
}

// LTrim erases count bytes from the head. Requires count <= length.
func (s *StringStore) LTrim(name string, count uint32) *Error {
	e, err := s.entry(name)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if count > uint32(len(e.data)) {
		return ErrInvalidArguments("count out of range")
	}
	e.data = e.data[count:]
	return nil
}

// RTrim erases count bytes from the tail. Requires count <= length.
func (s *StringStore) RTrim(name string, count uint32) *Error {
	e, err := s.entry(name)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if count > uint32(len(e.data)) {
		return ErrInvalidArguments("count out of range")
	}
	e.data = e.data[:uint32(len(e.data))-count]
	return nil
}

// drop removes the entry without touching the key space. The aggregate
// delete path owns the ordering between the two sides.
func (s *StringStore) drop(name string) bool {
	_, ok := s.entries.LoadAndDelete(name)
	return ok
}

// --------------------------------------------------------------------------
// Snapshot Iteration
// --------------------------------------------------------------------------

// StringItem is one entry captured for a snapshot.
type StringItem struct {
	Name  string
	Value []byte
}

// Items captures a snapshot of all entries. Each entry is copied under its
// read lock, so a single value is never observed half-written. Two entries
// need not reflect the same instant.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (s *StringStore) Items() []StringItem {
	items := make([]StringItem, 0, s.entries.Size())
	s.entries.Range(func(name string, e *stringEntry) bool {
		e.mu.RLock()
		value := make([]byte, len(e.data))
		copy(value, e.data)
		e.mu.RUnlock()
		items = append(items, StringItem{Name: name, Value: value})
		return true
	})
	return items
}

// checkRange validates a [start, end) range against a length.
func checkRange(start, end, length uint32) *Error {
	if start > end || end > length {
		return ErrInvalidArguments("range out of bounds")
	}
	return nil
}
