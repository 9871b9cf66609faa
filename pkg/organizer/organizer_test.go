package organizer

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/folio/internal/memory"
	"github.com/mesh-intelligence/folio/pkg/repository"
	"github.com/mesh-intelligence/folio/pkg/tree"
	"github.com/mesh-intelligence/folio/pkg/types"
)

const key = types.KeySelfObservation

var epoch = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

// stepClock advances one minute per call.
type stepClock struct{ t time.Time }

func (c *stepClock) now() time.Time {
	c.t = c.t.Add(time.Minute)
	return c.t
}

// seqIDs hands out id-1, id-2, ...
func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

type fixture struct {
	repo  *repository.Repository
	clock *stepClock
	o     *Organizer
}

func newFixture(t *testing.T, seed ...types.Node) *fixture {
	t.Helper()
	repo := repository.New(memory.New())
	if len(seed) > 0 {
		require.NoError(t, repo.Save(key, seed))
	}
	clock := &stepClock{t: epoch}
	o := New(key, repo, WithClock(clock.now), WithIDGenerator(seqIDs()))
	return &fixture{repo: repo, clock: clock, o: o}
}

// persisted returns what is currently stored for the collection.
func (f *fixture) persisted() []types.Node {
	return f.repo.Load(key)
}

func folder(id, parent, title string) types.Node {
	return types.NewNode(id, types.KindFolder, parent, title, epoch)
}

func file(id, parent, title string) types.Node {
	return types.NewNode(id, types.KindFile, parent, title, epoch)
}

// nestedSeed builds:
//
//	A/
//	  B/
//	    c
//	  d
//	e
func nestedSeed() []types.Node {
	return []types.Node{
		folder("A", "", "Alpha"),
		folder("B", "A", "Beta"),
		file("c", "B", "Gamma"),
		file("d", "A", "Delta"),
		file("e", "", "Epsilon"),
	}
}

// failingRepo stores nothing and fails every save.
type failingRepo struct{ nodes []types.Node }

func (r failingRepo) Load(string) []types.Node { return types.CloneNodes(r.nodes) }
func (failingRepo) Save(string, []types.Node) error { return errors.New("disk full") }

func TestNewLoadsSnapshot(t *testing.T) {
	f := newFixture(t, nestedSeed()...)
	assert.Equal(t, key, f.o.Key())
	assert.Len(t, f.o.Nodes(), 5)
	assert.True(t, f.o.Navigation().AtRoot())
	assert.False(t, f.o.Editor().Active())
	assert.Equal(t, DragIdle, f.o.Drag().State())
}

func TestNodesReturnsCopy(t *testing.T) {
	f := newFixture(t, nestedSeed()...)
	nodes := f.o.Nodes()
	nodes[0].Title = "mutated"
	n, ok := f.o.Node("A")
	require.True(t, ok)
	assert.Equal(t, "Alpha", n.Title)
}

func TestReloadPicksUpExternalWrites(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.repo.Save(key, nestedSeed()))
	assert.Empty(t, f.o.Nodes())
	f.o.Reload()
	assert.Len(t, f.o.Nodes(), 5)
}

func TestCheckReportsProblems(t *testing.T) {
	f := newFixture(t, file("x", "ghost", "Orphan"))
	problems := f.o.Check()
	require.Len(t, problems, 1)
	assert.Equal(t, tree.ProblemDanglingParent, problems[0].Kind)
}

func TestDefaultClockWritesUTC(t *testing.T) {
	s := memory.New()
	o := New(key, repository.New(s))
	n, ok, err := o.CreateFolder("Work")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, time.UTC, n.UpdatedAt.Location())

	raw, err := s.Get(key)
	require.NoError(t, err)
	var stored []map[string]any
	require.NoError(t, json.Unmarshal(raw, &stored))
	require.Len(t, stored, 1)
	assert.True(t, strings.HasSuffix(stored[0]["updatedAt"].(string), "Z"), "got %v", stored[0]["updatedAt"])
}
