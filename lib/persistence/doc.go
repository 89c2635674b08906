// Package persistence implements the snapshot subsystem: the
// self-describing little-endian binary codec for the persistent stores
// (strings, sets and hashes; queues are intentionally absent) and the
// periodic dumper that writes full dumps and restores them at startup.
package persistence
