// Package repository persists node collections in a types.Store.
//
// Each collection is stored as a JSON array under its key. Reads fail soft:
// a missing or corrupt value loads as an empty collection, and nodes written
// by older versions are repaired in memory (missing type becomes file,
// missing parent becomes root) without rewriting storage.
package repository

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/folio/pkg/snapshot"
	"github.com/mesh-intelligence/folio/pkg/types"
)

var _ types.Repository = (*Repository)(nil)

// Repository reads and writes collections through a Store.
type Repository struct {
	store  types.Store
	logger *zap.Logger
}

// Option configures a Repository.
type Option func(*Repository)

// WithLogger sets the logger for load/save diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(r *Repository) {
		if l != nil {
			r.logger = l
		}
	}
}

// New returns a Repository over an attached store.
func New(store types.Store, opts ...Option) *Repository {
	r := &Repository{store: store, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load returns the nodes stored under key. It never fails: unreadable or
// malformed data yields an empty, non-nil slice.
func (r *Repository) Load(key string) []types.Node {
	raw, err := r.store.Get(key)
	if err != nil {
		if !errors.Is(err, types.ErrNotFound) {
			r.logger.Warn("collection unreadable, loading empty", zap.String("key", key), zap.Error(err))
		}
		return []types.Node{}
	}
	nodes, err := decodeNodes(raw)
	if err != nil {
		r.logger.Warn("collection corrupt, loading empty", zap.String("key", key), zap.Error(err))
		return []types.Node{}
	}
	r.logger.Debug("collection loaded", zap.String("key", key), zap.Int("nodes", len(nodes)))
	return nodes
}

// Save overwrites the collection stored under key. Only storage failures
// are returned.
func (r *Repository) Save(key string, nodes []types.Node) error {
	if key == "" {
		return types.ErrInvalidKey
	}
	if nodes == nil {
		nodes = []types.Node{}
	}
	data, err := json.Marshal(nodes)
	if err != nil {
		return fmt.Errorf("encoding collection %s: %w", key, err)
	}
	if err := r.store.Put(key, data); err != nil {
		return fmt.Errorf("saving collection %s: %w", key, err)
	}
	r.logger.Debug("collection saved", zap.String("key", key), zap.Int("nodes", len(nodes)))
	return nil
}

// Export returns the raw value of every known key and of every other key
// present in the store. Known keys without a value map to nil.
func (r *Repository) Export() (snapshot.Snapshot, error) {
	stored, err := r.store.Keys()
	if err != nil {
		return nil, fmt.Errorf("listing keys: %w", err)
	}
	keys := append(append([]string(nil), types.KnownKeys...), stored...)

	snap := make(snapshot.Snapshot, len(keys))
	for _, key := range keys {
		if _, done := snap[key]; done {
			continue
		}
		raw, err := r.store.Get(key)
		if errors.Is(err, types.ErrNotFound) {
			snap[key] = nil
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", key, err)
		}
		v := string(raw)
		snap[key] = &v
	}
	r.logger.Debug("snapshot exported", zap.Int("keys", len(snap)))
	return snap, nil
}

// Import overwrites stored values key by key from snap. Nil and empty
// values are skipped, leaving the stored value untouched. Values are not
// validated: a corrupt collection will load as empty. Returns the number of
// keys written.
func (r *Repository) Import(snap snapshot.Snapshot) (int, error) {
	written := 0
	for _, key := range snap.Keys() {
		v := snap[key]
		if key == "" || v == nil || *v == "" {
			continue
		}
		if err := r.store.Put(key, []byte(*v)); err != nil {
			return written, fmt.Errorf("importing %s: %w", key, err)
		}
		written++
	}
	r.logger.Info("snapshot imported", zap.Int("keys", written))
	return written, nil
}

// decodeNodes parses a stored collection. The value must be a JSON array
// whose elements are all objects; anything else is corrupt.
func decodeNodes(raw []byte) ([]types.Node, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, err
	}
	nodes := make([]types.Node, 0, len(elems))
	for i, elem := range elems {
		elem = bytes.TrimSpace(elem)
		if len(elem) == 0 || elem[0] != '{' {
			return nil, fmt.Errorf("element %d is not an object", i)
		}
		var n types.Node
		if err := json.Unmarshal(elem, &n); err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		nodes = append(nodes, repair(n))
	}
	return nodes, nil
}

// repair fills fields that older versions did not write.
func repair(n types.Node) types.Node {
	if n.Kind == "" {
		n.Kind = types.KindFile
	}
	if n.ParentID != nil && *n.ParentID == "" {
		n.ParentID = nil
	}
	return n
}
