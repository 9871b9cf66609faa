package tree

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/folio/pkg/types"
)

var testTime = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func folder(id, parent string) types.Node {
	return types.NewNode(id, types.KindFolder, parent, id, testTime)
}

func file(id, parent string) types.Node {
	return types.NewNode(id, types.KindFile, parent, id, testTime)
}

func ids(nodes []types.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.ID)
	}
	return out
}

// sample builds:
//
//	work/
//	  projects/
//	    alpha (file)
//	  notes (file)
//	home/
//	readme (file)
func sample() []types.Node {
	return []types.Node{
		file("readme", ""),
		folder("work", ""),
		file("notes", "work"),
		folder("projects", "work"),
		file("alpha", "projects"),
		folder("home", ""),
	}
}

func TestChildrenOf(t *testing.T) {
	nodes := sample()

	tests := []struct {
		name   string
		parent string
		want   []string
	}{
		{name: "root level keeps storage order", parent: "", want: []string{"readme", "work", "home"}},
		{name: "folder children", parent: "work", want: []string{"notes", "projects"}},
		{name: "empty folder", parent: "home", want: []string{}},
		{name: "nonexistent id has no children", parent: "missing", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(ChildrenOf(nodes, tt.parent)))
		})
	}
}

func TestDescendantIDs(t *testing.T) {
	nodes := sample()

	assert.Equal(t, []string{"notes", "projects", "alpha"}, DescendantIDs(nodes, "work"))
	assert.Equal(t, []string{"alpha"}, DescendantIDs(nodes, "projects"))
	assert.Empty(t, DescendantIDs(nodes, "home"))
	assert.Empty(t, DescendantIDs(nodes, ""))
	assert.Empty(t, DescendantIDs(nodes, "missing"))
}

func TestDescendantIDsNeverContainsRoot(t *testing.T) {
	nodes := sample()
	for _, n := range nodes {
		assert.NotContains(t, DescendantIDs(nodes, n.ID), n.ID, "descendants of %s", n.ID)
	}
}

func TestDescendantIDsTerminatesOnCycle(t *testing.T) {
	nodes := []types.Node{
		folder("a", "c"),
		folder("b", "a"),
		folder("c", "b"),
	}

	got := DescendantIDs(nodes, "a")
	assert.ElementsMatch(t, []string{"b", "c"}, got)
	assert.NotContains(t, got, "a")
}

func TestDescendantIDsDepthFirstOrder(t *testing.T) {
	nodes := []types.Node{
		folder("root", ""),
		folder("x", "root"),
		folder("y", "root"),
		file("x1", "x"),
		file("y1", "y"),
		file("r1", "root"),
	}
	assert.Equal(t, []string{"x", "y", "r1", "x1", "y1"}, DescendantIDs(nodes, "root"))
}

func TestIsDescendant(t *testing.T) {
	nodes := sample()
	assert.True(t, IsDescendant(nodes, "work", "alpha"))
	assert.False(t, IsDescendant(nodes, "projects", "work"))
	assert.False(t, IsDescendant(nodes, "work", "work"))
}

func TestBreadcrumbs(t *testing.T) {
	nodes := sample()

	assert.Empty(t, Breadcrumbs(nodes, ""))
	assert.Equal(t, []string{"work"}, ids(Breadcrumbs(nodes, "work")))
	assert.Equal(t, []string{"work", "projects"}, ids(Breadcrumbs(nodes, "projects")))
	assert.Empty(t, Breadcrumbs(nodes, "missing"))
}

func TestBreadcrumbsStopsAtDanglingParent(t *testing.T) {
	// Imported data where "orphans" points at a folder that was never
	// exported.
	nodes := []types.Node{
		folder("orphans", "ghost"),
		folder("inner", "orphans"),
		file("page", "inner"),
	}

	assert.Equal(t, []string{"orphans", "inner"}, ids(Breadcrumbs(nodes, "inner")))
	assert.NotPanics(t, func() {
		assert.Empty(t, ChildrenOf(nodes, "ghost"))
	})
}

func TestBreadcrumbsTerminatesOnCycle(t *testing.T) {
	nodes := []types.Node{
		folder("a", "b"),
		folder("b", "a"),
	}
	assert.Equal(t, []string{"a", "b"}, ids(Breadcrumbs(nodes, "b")))
}

func TestDepth(t *testing.T) {
	nodes := sample()

	tests := []struct {
		id     string
		want   int
		wantOK bool
	}{
		{id: "readme", want: 0, wantOK: true},
		{id: "projects", want: 1, wantOK: true},
		{id: "alpha", want: 2, wantOK: true},
		{id: "missing", want: 0, wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, ok := Depth(nodes, tt.id)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEveryChainReachesRoot(t *testing.T) {
	nodes := sample()
	for _, n := range nodes {
		d, ok := Depth(nodes, n.ID)
		require.True(t, ok, "node %s", n.ID)
		assert.Less(t, d, len(nodes))
	}
}

func TestPartition(t *testing.T) {
	folders, files := Partition(ChildrenOf(sample(), ""))
	assert.Equal(t, []string{"work", "home"}, ids(folders))
	assert.Equal(t, []string{"readme"}, ids(files))
}

func TestWalk(t *testing.T) {
	type visit struct {
		id    string
		depth int
	}
	var got []visit
	Walk(sample(), "", func(n types.Node, depth int) {
		got = append(got, visit{n.ID, depth})
	})

	want := []visit{
		{"work", 0},
		{"projects", 1},
		{"alpha", 2},
		{"notes", 1},
		{"home", 0},
		{"readme", 0},
	}
	assert.Equal(t, want, got)
}

func TestFindAndIsFolder(t *testing.T) {
	nodes := sample()

	n, ok := Find(nodes, "notes")
	require.True(t, ok)
	assert.Equal(t, types.KindFile, n.Kind)

	_, ok = Find(nodes, "")
	assert.False(t, ok)

	assert.True(t, IsFolder(nodes, "work"))
	assert.False(t, IsFolder(nodes, "notes"))
	assert.False(t, IsFolder(nodes, "missing"))
}

func TestNewIndexFirstOccurrenceWins(t *testing.T) {
	nodes := []types.Node{file("a", ""), folder("a", "")}
	idx := NewIndex(nodes)
	assert.Equal(t, 0, idx["a"])
}
