package organizer

import (
	"github.com/mesh-intelligence/folio/pkg/tree"
	"github.com/mesh-intelligence/folio/pkg/types"
)

// Navigation tracks the folder the user is looking at. The empty string is
// the root of the collection.
type Navigation struct {
	o       *Organizer
	current string
}

// Current returns the current folder id, or "" at the root.
func (n *Navigation) Current() string { return n.current }

// AtRoot reports whether the current folder is the root.
func (n *Navigation) AtRoot() bool { return n.current == "" }

// Enter makes folderID the current folder. Ids that are not Folders in the
// collection are ignored and ok is false.
func (n *Navigation) Enter(folderID string) bool {
	if !tree.IsFolder(n.o.nodes, folderID) {
		return false
	}
	n.current = folderID
	return true
}

// Up moves to the parent of the current folder. At the root it does
// nothing. A current folder that no longer exists returns to the root.
func (n *Navigation) Up() {
	if n.current == "" {
		return
	}
	cur, ok := tree.Find(n.o.nodes, n.current)
	if !ok {
		n.current = ""
		return
	}
	n.current = cur.Parent()
}

// GotoBreadcrumb jumps to an ancestor on the current breadcrumb trail, or
// to the root when id is "". Other ids are ignored.
func (n *Navigation) GotoBreadcrumb(id string) bool {
	if id == "" {
		n.current = ""
		return true
	}
	for _, b := range n.Breadcrumbs() {
		if b.ID == id {
			n.current = id
			return true
		}
	}
	return false
}

// Breadcrumbs returns the chain of folders from the root down to the
// current folder, inclusive. Empty at the root.
func (n *Navigation) Breadcrumbs() []types.Node {
	if n.current == "" {
		return []types.Node{}
	}
	return tree.Breadcrumbs(n.o.nodes, n.current)
}

// Listing returns the children of the current folder in display order:
// folders first, then files, storage order within each group.
func (n *Navigation) Listing() (folders, files []types.Node) {
	return tree.Partition(tree.ChildrenOf(n.o.nodes, n.current))
}

// ChildCount returns the number of direct children of id.
func (n *Navigation) ChildCount(id string) int {
	return len(tree.ChildrenOf(n.o.nodes, id))
}
