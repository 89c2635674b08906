package db

import (
	"sort"

	"github.com/puzpuzpuz/xsync/v3"
)

// --------------------------------------------------------------------------
// KeySpace
// --------------------------------------------------------------------------

// KeySpace is the process-wide set of live key names and the uniqueness
// authority for all typed stores. A key that is present here is owned by
// exactly one store; every successful create reserves its key here first.
type KeySpace struct {
	keys *xsync.MapOf[string, struct{}]
}

// NewKeySpace creates an empty key space.
func NewKeySpace() *KeySpace {
	return &KeySpace{
		keys: xsync.NewMapOf[string, struct{}](),
	}
}

// Add reserves a key. It returns false if the key is already live.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (ks *KeySpace) Add(key string) bool {
	_, loaded := ks.keys.LoadOrStore(key, struct{}{})
	return !loaded
}

// Remove releases a key. Removing an absent key is a no-op.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (ks *KeySpace) Remove(key string) {
	ks.keys.Delete(key)
}

// Contains reports whether a key is live.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (ks *KeySpace) Contains(key string) bool {
	_, ok := ks.keys.Load(key)
	return ok
}

// Size returns the current number of live keys.
func (ks *KeySpace) Size() int {
	return ks.keys.Size()
}

// Snapshot returns a sorted copy of all live keys. The view is eventually
// consistent: writers concurrent with the iteration may or may not be
// reflected, and readers never block them.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (ks *KeySpace) Snapshot() []string {
	result := make([]string, 0, ks.keys.Size())
	ks.keys.Range(func(key string, _ struct{}) bool {
		result = append(result, key)
		return true
	})
	sort.Strings(result)
	return result
}
