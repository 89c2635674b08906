// Package db implements the typed-store runtime: a shared KeySpace that
// enforces one global unique-key namespace, four keyed collections
// (strings, sets, queues, hashes) with per-entry locking, and the
// cross-collection key enumeration and deletion operations.
//
// The package focuses on:
//   - A concurrent keyed map per collection (strings, sets, queues, hashes)
//   - One uniqueness authority (KeySpace) shared by all collections
//   - Structured errors with a machine code and a human message
//   - Lock-consistent snapshot iteration for the persistence layer
//
// Concurrency model: each store is a concurrent keyed map. Mutations take
// a per-entry exclusive lock for the duration of the call, readers take
// shared locks, and map growth never blocks unrelated entries. Per-key
// operations are linearizable; cross-key operations (set algebra, Keys,
// Delete) lock one key at a time in input order and give no transactional
// guarantee across keys.
//
// Ownership: each store exclusively owns its entries. The Stores aggregate
// holds all four stores plus the KeySpace and is constructed once at
// startup; every worker receives the same shared reference.
package db
