// Package organizer implements the controllers that mutate a collection:
// creating and deleting nodes, drag-and-drop reparenting, folder
// navigation, and the editor session for one open page.
//
// An Organizer owns an in-memory snapshot of one collection. Every mutation
// is validated against the snapshot with the tree package, written through
// the Repository as a full overwrite, and only then becomes the new
// snapshot. Domain conditions (rejected moves, unconfirmed deletes, unknown
// ids) are no-ops; only storage failures are returned as errors.
//
// An Organizer is driven by one actor at a time and is not safe for
// concurrent use.
package organizer

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/folio/pkg/tree"
	"github.com/mesh-intelligence/folio/pkg/types"
)

// Organizer manages one collection.
type Organizer struct {
	key    string
	repo   types.Repository
	nodes  []types.Node
	now    func() time.Time
	newID  func() string
	logger *zap.Logger

	nav    *Navigation
	editor *EditorSession
	drag   *Drag
}

// Option configures an Organizer.
type Option func(*Organizer)

// WithLogger sets the logger for controller diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(o *Organizer) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithClock overrides the time source used for UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(o *Organizer) {
		if now != nil {
			o.now = now
		}
	}
}

// WithIDGenerator overrides how new node ids are allocated.
func WithIDGenerator(gen func() string) Option {
	return func(o *Organizer) {
		if gen != nil {
			o.newID = gen
		}
	}
}

// New loads the collection stored under key and returns an Organizer
// positioned at the root with no open editor and no drag in progress.
func New(key string, repo types.Repository, opts ...Option) *Organizer {
	o := &Organizer{
		key:    key,
		repo:   repo,
		now:    utcNow,
		newID:  generateUUID,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.logger = o.logger.With(zap.String("collection", key))
	o.nav = &Navigation{o: o}
	o.editor = &EditorSession{o: o}
	o.drag = &Drag{o: o}
	o.Reload()
	return o
}

// utcNow is the default clock. Stored timestamps are always UTC.
func utcNow() time.Time {
	return time.Now().UTC()
}

// generateUUID generates a new UUID v7 for node ids.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}

// Key returns the collection key.
func (o *Organizer) Key() string { return o.key }

// Navigation returns the navigation state.
func (o *Organizer) Navigation() *Navigation { return o.nav }

// Editor returns the editor session.
func (o *Organizer) Editor() *EditorSession { return o.editor }

// Drag returns the drag-and-drop controller.
func (o *Organizer) Drag() *Drag { return o.drag }

// Reload replaces the snapshot with the persisted collection.
func (o *Organizer) Reload() {
	o.nodes = o.repo.Load(o.key)
}

// Nodes returns a copy of the snapshot in storage order.
func (o *Organizer) Nodes() []types.Node {
	return types.CloneNodes(o.nodes)
}

// Node returns the node with the given id.
func (o *Organizer) Node(id string) (types.Node, bool) {
	n, ok := tree.Find(o.nodes, id)
	if !ok {
		return types.Node{}, false
	}
	return n.Clone(), true
}

// Check reports integrity problems in the snapshot.
func (o *Organizer) Check() []tree.Problem {
	return tree.Check(o.nodes)
}

// commit persists nodes and adopts them as the snapshot. On failure the
// previous snapshot is kept.
func (o *Organizer) commit(nodes []types.Node) error {
	if err := o.repo.Save(o.key, nodes); err != nil {
		o.logger.Error("save failed", zap.Error(err))
		return err
	}
	o.nodes = nodes
	return nil
}

// indexOf returns the position of id in the snapshot, or -1.
func (o *Organizer) indexOf(id string) int {
	if i, ok := tree.NewIndex(o.nodes)[id]; ok {
		return i
	}
	return -1
}
