// Package tree implements pure queries over a flat collection of nodes:
// children, descendants, breadcrumbs, display ordering and integrity checks.
//
// Relationships are recomputed from ParentID references on every call. No
// function mutates its input, and every walk tracks visited ids so that
// corrupt cyclic data terminates.
package tree

import (
	"slices"

	"github.com/mesh-intelligence/folio/pkg/types"
)

// Index maps node ids to their position in a collection slice.
// When ids are duplicated the first occurrence wins.
type Index map[string]int

// NewIndex builds an Index over nodes.
func NewIndex(nodes []types.Node) Index {
	idx := make(Index, len(nodes))
	for i, n := range nodes {
		if _, dup := idx[n.ID]; dup {
			continue
		}
		idx[n.ID] = i
	}
	return idx
}

// Find returns the node with the given id.
func Find(nodes []types.Node, id string) (types.Node, bool) {
	if id == "" {
		return types.Node{}, false
	}
	for _, n := range nodes {
		if n.ID == id {
			return n, true
		}
	}
	return types.Node{}, false
}

// IsFolder reports whether id resolves to an existing Folder.
func IsFolder(nodes []types.Node, id string) bool {
	n, ok := Find(nodes, id)
	return ok && n.IsFolder()
}

// ChildrenOf returns the nodes whose parent is parentID, in storage order.
// An empty parentID selects root-level nodes. A parentID that does not
// resolve to any node simply has no children.
func ChildrenOf(nodes []types.Node, parentID string) []types.Node {
	var out []types.Node
	for _, n := range nodes {
		if n.Parent() == parentID {
			out = append(out, n)
		}
	}
	return out
}

// childMap groups node positions by parent id, preserving storage order.
func childMap(nodes []types.Node) map[string][]int {
	m := make(map[string][]int)
	for i, n := range nodes {
		p := n.Parent()
		m[p] = append(m[p], i)
	}
	return m
}

// DescendantIDs returns the transitive children of folderID. Direct
// children come first, followed by the descendants of each Folder child in
// order. Files are included as leaves. The result never contains folderID.
func DescendantIDs(nodes []types.Node, folderID string) []string {
	if folderID == "" {
		return nil
	}
	children := childMap(nodes)
	visited := map[string]bool{folderID: true}
	var out []string

	var walk func(id string)
	walk = func(id string) {
		var folders []string
		for _, i := range children[id] {
			n := nodes[i]
			if visited[n.ID] {
				continue
			}
			visited[n.ID] = true
			out = append(out, n.ID)
			if n.IsFolder() {
				folders = append(folders, n.ID)
			}
		}
		for _, f := range folders {
			walk(f)
		}
	}
	walk(folderID)
	return out
}

// IsDescendant reports whether candidateID lies inside the subtree rooted
// at ancestorID.
func IsDescendant(nodes []types.Node, ancestorID, candidateID string) bool {
	return slices.Contains(DescendantIDs(nodes, ancestorID), candidateID)
}

// Breadcrumbs returns the ancestor chain from the root down to folderID,
// inclusive. An empty folderID yields an empty trail. The walk stops early
// at a ParentID that points at a missing node, so a dangling reference
// produces a partial trail rather than an error.
func Breadcrumbs(nodes []types.Node, folderID string) []types.Node {
	idx := NewIndex(nodes)
	seen := make(map[string]bool)
	var trail []types.Node
	for id := folderID; id != "" && !seen[id]; {
		i, ok := idx[id]
		if !ok {
			break
		}
		seen[id] = true
		n := nodes[i]
		trail = append(trail, n)
		id = n.Parent()
	}
	slices.Reverse(trail)
	return trail
}

// Depth counts the ancestors of id reachable through ParentID before the
// walk reaches the root or a dangling reference. ok is false when id is
// unknown or the walk revisits a node.
func Depth(nodes []types.Node, id string) (depth int, ok bool) {
	idx := NewIndex(nodes)
	i, found := idx[id]
	if !found {
		return 0, false
	}
	seen := map[string]bool{id: true}
	for p := nodes[i].Parent(); p != ""; {
		j, found := idx[p]
		if !found {
			return depth, true
		}
		if seen[p] {
			return depth, false
		}
		seen[p] = true
		depth++
		p = nodes[j].Parent()
	}
	return depth, true
}

// Partition splits nodes into folders and files, each in storage order.
// This is the display order: folders first, then files.
func Partition(nodes []types.Node) (folders, files []types.Node) {
	for _, n := range nodes {
		if n.IsFolder() {
			folders = append(folders, n)
		} else {
			files = append(files, n)
		}
	}
	return folders, files
}

// Walk visits the subtree below rootID depth-first in display order,
// calling fn with each node and its depth relative to rootID (children of
// rootID have depth 0). An empty rootID walks the whole collection from the
// root level.
func Walk(nodes []types.Node, rootID string, fn func(n types.Node, depth int)) {
	children := childMap(nodes)
	visited := map[string]bool{}
	if rootID != "" {
		visited[rootID] = true
	}

	var walk func(id string, depth int)
	walk = func(id string, depth int) {
		var level []types.Node
		for _, i := range children[id] {
			level = append(level, nodes[i])
		}
		folders, files := Partition(level)
		for _, n := range append(folders, files...) {
			if visited[n.ID] {
				continue
			}
			visited[n.ID] = true
			fn(n, depth)
			if n.IsFolder() {
				walk(n.ID, depth+1)
			}
		}
	}
	walk(rootID, 0)
}
