package db

import (
	"sync"

	"github.com/puzpuzpuz/xsync/v3"
)

// --------------------------------------------------------------------------
// Entry Type
// --------------------------------------------------------------------------

// queueEntry holds one FIFO sequence behind a per-entry lock. The lock
// serializes concurrent pushers and poppers, so every pop observes the
// global interleaving of completed pushes and no element twice.
type queueEntry struct {
	mu    sync.Mutex
	items []string
}

// --------------------------------------------------------------------------
// QueueStore
// --------------------------------------------------------------------------

// QueueStore owns all keyed FIFO queues of strings. Queues are not part of
// the persisted snapshot; their contents live and die with the process.
type QueueStore struct {
	ks      *KeySpace
	entries *xsync.MapOf[string, *queueEntry]
}

// NewQueueStore creates an empty queue store bound to the given key space.
func NewQueueStore(ks *KeySpace) *QueueStore {
	return &QueueStore{
		ks:      ks,
		entries: xsync.NewMapOf[string, *queueEntry](),
	}
}

func (s *QueueStore) entry(name string) (*queueEntry, *Error) {
	e, ok := s.entries.Load(name)
	if !ok {
		return nil, ErrKeyNotFound(name)
	}
	return e, nil
}

// Create inserts a new empty queue under a globally unique name.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (s *QueueStore) Create(name string) *Error {
	if !s.ks.Add(name) {
		return ErrKeyExists(name)
	}
	s.entries.Store(name, &queueEntry{})
	return nil
}

// Push appends a value at the tail.
func (s *QueueStore) Push(name, value string) *Error {
	e, err := s.entry(name)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.items = append(e.items, value)
	return nil
}

// Pop removes and returns the head. An empty queue is an error, not a wait.
func (s *QueueStore) Pop(name string) (string, *Error) {
	e, err := s.entry(name)
	if err != nil {
		return "", err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.items) == 0 {
		return "", ErrQueueEmpty(name)
	}
	head := e.items[0]
	e.items = e.items[1:]
	return head, nil
}

func (s *QueueStore) drop(name string) bool {
	_, ok := s.entries.LoadAndDelete(name)
	return ok
}
