// Package types defines the Node entity, the Store and Repository
// interfaces, collection keys, and standard error types for Folio.
//
// A collection is a flat, insertion-ordered slice of nodes. The tree is
// implied by ParentID references; nothing holds live links between nodes.
package types
