package tree

import (
	"fmt"

	"github.com/mesh-intelligence/folio/pkg/types"
)

// ProblemKind classifies an integrity violation found by Check.
type ProblemKind string

// Integrity violations.
const (
	ProblemEmptyID         ProblemKind = "empty_id"
	ProblemDuplicateID     ProblemKind = "duplicate_id"
	ProblemDanglingParent  ProblemKind = "dangling_parent"
	ProblemParentNotFolder ProblemKind = "parent_not_folder"
	ProblemCycle           ProblemKind = "cycle"
)

// Problem describes one violation. Ref holds the related id, when any.
type Problem struct {
	Kind   ProblemKind `json:"kind"`
	NodeID string      `json:"node_id"`
	Ref    string      `json:"ref,omitempty"`
}

func (p Problem) String() string {
	switch p.Kind {
	case ProblemEmptyID:
		return "node with empty id"
	case ProblemDuplicateID:
		return fmt.Sprintf("duplicate id %s", p.NodeID)
	case ProblemDanglingParent:
		return fmt.Sprintf("%s: parent %s does not exist", p.NodeID, p.Ref)
	case ProblemParentNotFolder:
		return fmt.Sprintf("%s: parent %s is not a folder", p.NodeID, p.Ref)
	case ProblemCycle:
		return fmt.Sprintf("%s: parent chain loops", p.NodeID)
	default:
		return fmt.Sprintf("%s: %s", p.NodeID, p.Kind)
	}
}

// Check reports every violation of the collection invariants: unique
// non-empty ids, parents that exist and are folders, and an acyclic parent
// relation. A clean collection yields nil.
func Check(nodes []types.Node) []Problem {
	var problems []Problem
	idx := NewIndex(nodes)

	seen := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		if n.ID == "" {
			problems = append(problems, Problem{Kind: ProblemEmptyID})
			continue
		}
		if seen[n.ID] {
			problems = append(problems, Problem{Kind: ProblemDuplicateID, NodeID: n.ID})
			continue
		}
		seen[n.ID] = true
	}

	for _, n := range nodes {
		p := n.Parent()
		if n.ID == "" || p == "" {
			continue
		}
		i, ok := idx[p]
		if !ok {
			problems = append(problems, Problem{Kind: ProblemDanglingParent, NodeID: n.ID, Ref: p})
			continue
		}
		if !nodes[i].IsFolder() {
			problems = append(problems, Problem{Kind: ProblemParentNotFolder, NodeID: n.ID, Ref: p})
		}
		if _, ok := Depth(nodes, n.ID); !ok {
			problems = append(problems, Problem{Kind: ProblemCycle, NodeID: n.ID})
		}
	}
	return problems
}
