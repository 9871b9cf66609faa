package types

import "errors"

// Store is a durable key-value store holding one raw value per key.
// Callers attach to a backend, read and write values, and detach when done.
// The last Put for a key wins.
type Store interface {
	// Attach connects the Store to the backend described by config.
	// Creates the DataDir if it does not exist. Returns ErrAlreadyAttached
	// if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, operations return ErrStoreDetached.
	Detach() error

	// Get returns the raw value stored under key.
	// Returns ErrNotFound if the key has never been written.
	Get(key string) ([]byte, error)

	// Put replaces the value stored under key.
	Put(key string, value []byte) error

	// Keys returns every key that currently holds a value, sorted.
	Keys() ([]string, error)
}

// Repository loads and saves whole collections of nodes.
type Repository interface {
	// Load returns the nodes stored under key. Missing or malformed data
	// yields an empty slice; Load never fails.
	Load(key string) []Node

	// Save overwrites the collection stored under key.
	Save(key string, nodes []Node) error
}

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
)

// Store operation errors.
var (
	ErrNotFound        = errors.New("key not found")
	ErrInvalidKey      = errors.New("invalid collection key")
	ErrSnapshotCorrupt = errors.New("snapshot is corrupt")
)
