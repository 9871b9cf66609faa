package tree

import (
	"strings"

	"github.com/mesh-intelligence/folio/pkg/types"
)

// PathSeparator joins titles in a node path.
const PathSeparator = "/"

// Resolve turns a user reference into a node id, starting from folderID.
// A reference is either an exact node id or a PathSeparator-joined chain of
// titles. A leading separator anchors the walk at the root, "." stays put
// and ".." climbs to the parent. Titles match exactly first, then
// case-insensitively; the first match in storage order wins. The root
// resolves to "".
func Resolve(nodes []types.Node, folderID, ref string) (id string, ok bool) {
	if ref != "" && ref != PathSeparator {
		if _, found := Find(nodes, ref); found {
			return ref, true
		}
	}

	cur := folderID
	if strings.HasPrefix(ref, PathSeparator) {
		cur = ""
	}
	for _, seg := range strings.Split(ref, PathSeparator) {
		switch seg {
		case "", ".":
			continue
		case "..":
			if n, found := Find(nodes, cur); found {
				cur = n.Parent()
			} else {
				cur = ""
			}
			continue
		}
		if cur != "" && !IsFolder(nodes, cur) {
			return "", false
		}
		child, found := childByTitle(nodes, cur, seg)
		if !found {
			return "", false
		}
		cur = child.ID
	}
	return cur, true
}

func childByTitle(nodes []types.Node, parentID, title string) (types.Node, bool) {
	children := ChildrenOf(nodes, parentID)
	for _, c := range children {
		if c.Title == title {
			return c, true
		}
	}
	for _, c := range children {
		if strings.EqualFold(c.Title, title) {
			return c, true
		}
	}
	return types.Node{}, false
}

// PathOf renders the title path of id from the root, for display. Missing
// ids render as "".
func PathOf(nodes []types.Node, id string) string {
	n, ok := Find(nodes, id)
	if !ok {
		return ""
	}
	var parts []string
	for _, a := range Breadcrumbs(nodes, n.Parent()) {
		parts = append(parts, a.Title)
	}
	parts = append(parts, n.Title)
	return PathSeparator + strings.Join(parts, PathSeparator)
}
