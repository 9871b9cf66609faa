package organizer

import (
	"go.uber.org/zap"

	"github.com/mesh-intelligence/folio/pkg/types"
)

// EditorSession holds an editable copy of one File. Edits stay in the
// buffer until Flush or Close writes them back by id.
type EditorSession struct {
	o      *Organizer
	active bool
	buf    types.Node
}

// Open starts editing node. Any other open session is flushed first.
// Folders cannot be opened and ok is false.
func (e *EditorSession) Open(node types.Node) (ok bool, err error) {
	if node.IsFolder() {
		return false, nil
	}
	if e.active && e.buf.ID != node.ID {
		if err := e.Close(); err != nil {
			return false, err
		}
	}
	e.buf = node.Clone()
	e.active = true
	return true, nil
}

// OpenID opens the node with the given id from the collection.
func (e *EditorSession) OpenID(id string) (bool, error) {
	n, found := e.o.Node(id)
	if !found {
		return false, nil
	}
	return e.Open(n)
}

// Active reports whether a session is open.
func (e *EditorSession) Active() bool { return e.active }

// NodeID returns the id of the node being edited, or "".
func (e *EditorSession) NodeID() string {
	if !e.active {
		return ""
	}
	return e.buf.ID
}

// Buffer returns a copy of the working values.
func (e *EditorSession) Buffer() types.Node { return e.buf.Clone() }

// SetTitle updates the buffered title.
func (e *EditorSession) SetTitle(title string) {
	if e.active {
		e.buf.Title = title
	}
}

// SetSubtitle updates the buffered subtitle.
func (e *EditorSession) SetSubtitle(subtitle string) {
	if e.active {
		e.buf.Subtitle = subtitle
	}
}

// SetContent updates the buffered content.
func (e *EditorSession) SetContent(content string) {
	if e.active {
		e.buf.Content = content
	}
}

// Flush writes the buffered title, subtitle and content to the stored node
// with the same id, bumps UpdatedAt and persists. The parent reference is
// never touched. The session stays open against the persisted values. If
// the node no longer exists the session is closed and nothing is written.
func (e *EditorSession) Flush() error {
	if !e.active {
		return nil
	}
	o := e.o
	i := o.indexOf(e.buf.ID)
	if i < 0 {
		o.logger.Debug("editor node vanished", zap.String("id", e.buf.ID))
		e.discard()
		return nil
	}

	next := types.CloneNodes(o.nodes)
	next[i].Title = e.buf.Title
	next[i].Subtitle = e.buf.Subtitle
	next[i].Content = e.buf.Content
	next[i].UpdatedAt = o.now()
	if err := o.commit(next); err != nil {
		return err
	}
	e.buf = next[i].Clone()
	return nil
}

// Close flushes and ends the session. On a flush error the session stays
// open so the edits are not lost.
func (e *EditorSession) Close() error {
	if err := e.Flush(); err != nil {
		return err
	}
	e.discard()
	return nil
}

// discard ends the session without writing.
func (e *EditorSession) discard() {
	e.active = false
	e.buf = types.Node{}
}
