package db

import (
	"context"
	"time"
)

// Pinger checks backend connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Searcher executes a rendered search body against an index and returns
// the raw engine response. An empty index searches all indices.
type Searcher interface {
	Search(ctx context.Context, index string, body []byte) ([]byte, error)
}

// Engine is the search engine facade.
type Engine interface {
	Pinger
	Searcher
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// KVStore provides simple key-value operations.
type KVStore interface {
	Pinger
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	WaitForReady(ctx context.Context, timeout time.Duration) error
	Close()
}
