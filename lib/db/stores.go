package db

import "strings"

// --------------------------------------------------------------------------
// Stores Aggregate
// --------------------------------------------------------------------------

// Stores owns the four typed stores and the shared key space. One instance
// is constructed at startup and passed to every worker; there is no hidden
// global state.
type Stores struct {
	KeySpace *KeySpace
	Strings  *StringStore
	Sets     *SetStore
	Queues   *QueueStore
	Hashes   *HashStore
}

// NewStores creates an empty aggregate with a fresh key space.
func NewStores() *Stores {
	ks := NewKeySpace()
	return &Stores{
		KeySpace: ks,
		Strings:  NewStringStore(ks),
		Sets:     NewSetStore(ks),
		Queues:   NewQueueStore(ks),
		Hashes:   NewHashStore(ks),
	}
}

// --------------------------------------------------------------------------
// Cross-Collection Operations
// --------------------------------------------------------------------------

// Keys enumerates live keys. The "*" sentinel matches everything, any other
// pattern matches keys containing it as a substring. The result is sorted
// ascending. There is deliberately no glob or regex grammar.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (s *Stores) Keys(pattern string) []string {
	all := s.KeySpace.Snapshot()
	if pattern == "*" {
		return all
	}
	result := make([]string, 0, len(all))
	for _, key := range all {
		if strings.Contains(key, pattern) {
			result = append(result, key)
		}
	}
	return result
}

// Delete removes a key from whichever store owns it and releases the name.
// Deleting an absent key is a silent no-op. At most one store owns a given
// key, so the first hit wins.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (s *Stores) Delete(key string) {
	owned := s.Strings.drop(key) ||
		s.Sets.drop(key) ||
		s.Queues.drop(key) ||
		s.Hashes.drop(key)
	if owned {
		s.KeySpace.Remove(key)
	}
}
