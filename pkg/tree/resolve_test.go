package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/folio/pkg/types"
)

func titled(id string, kind types.Kind, parent, title string) types.Node {
	return types.NewNode(id, kind, parent, title, testTime)
}

// titledSample builds:
//
//	Work/        (w)
//	  Projects/  (p)
//	    Alpha    (a)
//	  notes      (n)
//	work         (w2, file)
func titledSample() []types.Node {
	return []types.Node{
		titled("w", types.KindFolder, "", "Work"),
		titled("p", types.KindFolder, "w", "Projects"),
		titled("a", types.KindFile, "p", "Alpha"),
		titled("n", types.KindFile, "w", "notes"),
		titled("w2", types.KindFile, "", "work"),
	}
}

func TestResolve(t *testing.T) {
	nodes := titledSample()

	tests := []struct {
		name   string
		from   string
		ref    string
		want   string
		wantOK bool
	}{
		{name: "exact id", ref: "a", want: "a", wantOK: true},
		{name: "empty ref stays", from: "p", ref: "", want: "p", wantOK: true},
		{name: "root", from: "p", ref: "/", want: "", wantOK: true},
		{name: "title path from root", ref: "Work/Projects/Alpha", want: "a", wantOK: true},
		{name: "exact title beats case fold", ref: "work", want: "w2", wantOK: true},
		{name: "case fold", ref: "WORK/projects", want: "p", wantOK: true},
		{name: "relative", from: "w", ref: "notes", want: "n", wantOK: true},
		{name: "anchored ignores from", from: "p", ref: "/Work", want: "w", wantOK: true},
		{name: "dot and dotdot", from: "p", ref: "./../notes", want: "n", wantOK: true},
		{name: "dotdot at root", ref: "..", want: "", wantOK: true},
		{name: "trailing separator", ref: "Work/", want: "w", wantOK: true},
		{name: "missing title", ref: "Work/Nope", wantOK: false},
		{name: "through a file", ref: "Work/notes/x", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(nodes, tt.from, tt.ref)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestPathOf(t *testing.T) {
	nodes := titledSample()
	assert.Equal(t, "/Work/Projects/Alpha", PathOf(nodes, "a"))
	assert.Equal(t, "/work", PathOf(nodes, "w2"))
	assert.Equal(t, "", PathOf(nodes, "zzz"))
}
