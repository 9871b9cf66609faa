package types

import (
	"encoding/json"
	"time"
)

// Kind distinguishes leaf documents from containers.
type Kind string

// Node kinds. The string values match the persisted "type" field.
const (
	KindFile   Kind = "file"
	KindFolder Kind = "folder"
)

// Default field values applied when a node is created.
const (
	DefaultFileSubtitle   = "New entry"
	DefaultFileContent    = "<p>Start writing here...</p>"
	DefaultFolderSubtitle = "Folder"
)

// Node is one entry in a collection: a File holding opaque content or a
// Folder containing other nodes. Nodes reference their container through
// ParentID; a nil ParentID places the node at the root of the collection.
// Fields written by other tools are carried in Extra and written back on
// save.
type Node struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"type"`
	ParentID  *string   `json:"parentId"`
	Title     string    `json:"title"`
	Subtitle  string    `json:"subtitle"`
	Content   string    `json:"content,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`

	Extra map[string]json.RawMessage `json:"-"`
}

// IsFolder reports whether the node can hold children.
func (n Node) IsFolder() bool {
	return n.Kind == KindFolder
}

// Parent returns the parent id, or the empty string for root-level nodes.
func (n Node) Parent() string {
	if n.ParentID == nil {
		return ""
	}
	return *n.ParentID
}

// SetParent points the node at parentID. An empty parentID moves the node
// to the root.
func (n *Node) SetParent(parentID string) {
	if parentID == "" {
		n.ParentID = nil
		return
	}
	p := parentID
	n.ParentID = &p
}

// Clone returns a deep copy so callers can mutate the result without
// touching the original slice element.
func (n Node) Clone() Node {
	c := n
	if n.ParentID != nil {
		p := *n.ParentID
		c.ParentID = &p
	}
	if n.Tags != nil {
		c.Tags = append([]string(nil), n.Tags...)
	}
	if n.Extra != nil {
		c.Extra = make(map[string]json.RawMessage, len(n.Extra))
		for k, v := range n.Extra {
			c.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return c
}

// NewNode builds a node of the given kind with kind-appropriate defaults.
// Files get a placeholder subtitle and content; folders carry no content.
func NewNode(id string, kind Kind, parentID, title string, now time.Time) Node {
	n := Node{
		ID:        id,
		Kind:      kind,
		Title:     title,
		UpdatedAt: now,
	}
	n.SetParent(parentID)
	if kind == KindFolder {
		n.Subtitle = DefaultFolderSubtitle
	} else {
		n.Kind = KindFile
		n.Subtitle = DefaultFileSubtitle
		n.Content = DefaultFileContent
	}
	return n
}

// CloneNodes deep-copies a node slice.
func CloneNodes(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = n.Clone()
	}
	return out
}
