package organizer

import (
	"go.uber.org/zap"

	"github.com/mesh-intelligence/folio/pkg/tree"
	"github.com/mesh-intelligence/folio/pkg/types"
)

// DragState is the phase of a drag-and-drop reparent gesture.
type DragState int

// Drag states.
const (
	DragIdle DragState = iota
	DragDragging
	DragHovering
)

func (s DragState) String() string {
	switch s {
	case DragIdle:
		return "idle"
	case DragDragging:
		return "dragging"
	case DragHovering:
		return "hovering"
	}
	return "unknown"
}

// Drag is the reparent state machine:
//
//	Idle --Start--> Dragging --Hover(valid)--> Hovering
//	Hovering --Leave--> Dragging
//	Dragging|Hovering --Drop--> Idle
//	any --Abort--> Idle
type Drag struct {
	o      *Organizer
	state  DragState
	source string
	target string
}

// State returns the current phase.
func (d *Drag) State() DragState { return d.state }

// Source returns the node being dragged, or "" when idle.
func (d *Drag) Source() string { return d.source }

// Target returns the highlighted drop target, or "" unless hovering.
func (d *Drag) Target() string { return d.target }

// Start begins dragging sourceID. Unknown ids leave the machine idle.
func (d *Drag) Start(sourceID string) bool {
	if d.o.indexOf(sourceID) < 0 {
		d.reset()
		return false
	}
	d.state = DragDragging
	d.source = sourceID
	d.target = ""
	return true
}

// Hover moves the pointer over targetID. A valid target is highlighted and
// the machine enters Hovering; an invalid one drops back to Dragging.
func (d *Drag) Hover(targetID string) bool {
	if d.state == DragIdle {
		return false
	}
	if !d.o.CanReparent(d.source, targetID) {
		d.state = DragDragging
		d.target = ""
		return false
	}
	d.state = DragHovering
	d.target = targetID
	return true
}

// Leave clears the highlighted target.
func (d *Drag) Leave() {
	if d.state == DragHovering {
		d.state = DragDragging
		d.target = ""
	}
}

// Abort cancels the gesture.
func (d *Drag) Abort() { d.reset() }

// Drop releases the source onto targetID and returns to Idle. The move is
// validated again; an invalid drop mutates nothing and moved is false.
func (d *Drag) Drop(targetID string) (moved bool, err error) {
	if d.state == DragIdle {
		return false, nil
	}
	source := d.source
	d.reset()
	return d.o.Reparent(source, targetID)
}

func (d *Drag) reset() {
	d.state = DragIdle
	d.source = ""
	d.target = ""
}

// CanReparent reports whether sourceID may be moved into targetID. The
// target must be an existing Folder other than the source and outside the
// source's subtree.
func (o *Organizer) CanReparent(sourceID, targetID string) bool {
	if sourceID == "" || sourceID == targetID {
		return false
	}
	if o.indexOf(sourceID) < 0 {
		return false
	}
	if !tree.IsFolder(o.nodes, targetID) {
		return false
	}
	return !tree.IsDescendant(o.nodes, sourceID, targetID)
}

// Reparent moves sourceID into targetID if CanReparent allows it, bumps
// UpdatedAt and persists. Rejected moves are no-ops.
func (o *Organizer) Reparent(sourceID, targetID string) (bool, error) {
	if !o.CanReparent(sourceID, targetID) {
		o.logger.Debug("reparent rejected",
			zap.String("source", sourceID), zap.String("target", targetID))
		return false, nil
	}
	i := o.indexOf(sourceID)
	next := types.CloneNodes(o.nodes)
	next[i].SetParent(targetID)
	next[i].UpdatedAt = o.now()
	if err := o.commit(next); err != nil {
		return false, err
	}
	o.logger.Debug("node reparented",
		zap.String("source", sourceID), zap.String("target", targetID))
	return true, nil
}
