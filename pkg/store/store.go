// Package store provides the public factory for Folio storage backends,
// keeping backend implementations internal.
package store

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/folio/internal/bolt"
	"github.com/mesh-intelligence/folio/internal/filestore"
	"github.com/mesh-intelligence/folio/internal/memory"
	"github.com/mesh-intelligence/folio/internal/sqlite"
	"github.com/mesh-intelligence/folio/pkg/types"
)

// New creates a detached backend for the named backend.
//
// Example:
//
//	s, err := store.New(types.BackendSQLite, zap.NewNop())
//	err = s.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".folio-db",
//	})
//	defer s.Detach()
func New(backend string, logger *zap.Logger) (types.Store, error) {
	switch backend {
	case types.BackendSQLite:
		return sqlite.NewBackend(sqlite.WithLogger(logger)), nil
	case types.BackendBolt:
		return bolt.NewBackend(bolt.WithLogger(logger)), nil
	case types.BackendFiles:
		return filestore.NewBackend(), nil
	case types.BackendMemory:
		return memory.NewDetached(), nil
	case "":
		return nil, types.ErrBackendEmpty
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrBackendUnknown, backend)
	}
}

// Open creates the backend named by config.Backend and attaches it.
// The caller must Detach the returned store.
func Open(config types.Config, logger *zap.Logger) (types.Store, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	s, err := New(config.Backend, logger)
	if err != nil {
		return nil, err
	}
	if err := s.Attach(config); err != nil {
		return nil, fmt.Errorf("attach %s store: %w", config.Backend, err)
	}
	return s, nil
}
