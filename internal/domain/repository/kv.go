package repository

import "context"

// KVStore is the persistence port for the draft cache. The draft logic only
// ever needs get/set/remove on a namespaced string key, so any backend that
// can do that (an in-memory map, a SQLite file, Postgres, Redis) plugs in
// without touching the defensive-merge logic.
//
// Get returns domain.ErrNotFound when the key has never been written.
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}
