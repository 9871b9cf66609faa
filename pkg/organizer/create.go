package organizer

import (
	"strings"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/folio/pkg/tree"
	"github.com/mesh-intelligence/folio/pkg/types"
)

// Confirmer asks the user to approve an irreversible action.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

// Confirm calls f.
func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// AlwaysConfirm approves every prompt. Use it for non-interactive callers
// that have already obtained consent, such as a --yes flag.
var AlwaysConfirm Confirmer = ConfirmFunc(func(string) bool { return true })

// Create adds a node of the given kind inside the current folder, at the
// head of the collection, and persists it. A new File opens in the editor
// session. A blank title, or a current folder that no longer resolves to a
// Folder, makes Create a no-op and ok is false.
func (o *Organizer) Create(kind types.Kind, title string) (node types.Node, ok bool, err error) {
	if strings.TrimSpace(title) == "" {
		return types.Node{}, false, nil
	}
	parent := o.nav.current
	if parent != "" && !tree.IsFolder(o.nodes, parent) {
		o.logger.Debug("create skipped, current folder missing", zap.String("folder", parent))
		return types.Node{}, false, nil
	}

	n := types.NewNode(o.newID(), kind, parent, title, o.now())
	next := make([]types.Node, 0, len(o.nodes)+1)
	next = append(next, n)
	next = append(next, o.nodes...)
	if err := o.commit(next); err != nil {
		return types.Node{}, false, err
	}
	o.logger.Debug("node created", zap.String("id", n.ID), zap.String("kind", string(n.Kind)))

	if !n.IsFolder() {
		if _, err := o.editor.Open(n); err != nil {
			return n.Clone(), true, err
		}
	}
	return n.Clone(), true, nil
}

// CreateFolder is Create with KindFolder.
func (o *Organizer) CreateFolder(title string) (types.Node, bool, error) {
	return o.Create(types.KindFolder, title)
}

// CreateFile is Create with KindFile.
func (o *Organizer) CreateFile(title string) (types.Node, bool, error) {
	return o.Create(types.KindFile, title)
}

// DeletePrompt returns the confirmation question shown before deleting n.
func DeletePrompt(n types.Node) string {
	if n.IsFolder() {
		return `Delete folder "` + n.Title + `" and all its contents?`
	}
	return `Delete page "` + n.Title + `"?`
}

// Delete removes the node with the given id and, for a Folder, every
// descendant, after confirm approves DeletePrompt. An unknown id, a nil
// confirmer or a declined prompt removes nothing. If the open editor
// session belongs to a removed node it is closed without flushing. Returns
// the number of nodes removed.
func (o *Organizer) Delete(id string, confirm Confirmer) (int, error) {
	target, found := tree.Find(o.nodes, id)
	if !found {
		return 0, nil
	}
	if confirm == nil || !confirm.Confirm(DeletePrompt(target)) {
		o.logger.Debug("delete not confirmed", zap.String("id", id))
		return 0, nil
	}

	remove := map[string]bool{id: true}
	if target.IsFolder() {
		for _, d := range tree.DescendantIDs(o.nodes, id) {
			remove[d] = true
		}
	}

	kept := make([]types.Node, 0, len(o.nodes))
	for _, n := range o.nodes {
		if !remove[n.ID] {
			kept = append(kept, n)
		}
	}
	removed := len(o.nodes) - len(kept)
	if err := o.commit(kept); err != nil {
		return 0, err
	}
	o.logger.Debug("nodes deleted", zap.String("id", id), zap.Int("removed", removed))

	if o.editor.Active() && remove[o.editor.NodeID()] {
		o.editor.discard()
	}
	if remove[o.nav.current] {
		o.nav.current = target.Parent()
	}
	if o.drag.state != DragIdle && (remove[o.drag.source] || remove[o.drag.target]) {
		o.drag.reset()
	}
	return removed, nil
}
