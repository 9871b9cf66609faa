package organizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/folio/pkg/tree"
	"github.com/mesh-intelligence/folio/pkg/types"
)

func TestCreateFolderThenFileInside(t *testing.T) {
	f := newFixture(t)

	notes, ok, err := f.o.CreateFolder("Notes")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, types.KindFolder, notes.Kind)
	assert.Nil(t, notes.ParentID)
	assert.Equal(t, types.DefaultFolderSubtitle, notes.Subtitle)
	assert.Empty(t, notes.Content)
	assert.False(t, f.o.Editor().Active(), "folders do not open in the editor")

	require.True(t, f.o.Navigation().Enter(notes.ID))

	ideas, ok, err := f.o.CreateFile("Ideas")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, notes.ID, ideas.Parent())
	assert.Equal(t, types.DefaultFileSubtitle, ideas.Subtitle)
	assert.Equal(t, types.DefaultFileContent, ideas.Content)

	stored := f.persisted()
	require.Len(t, stored, 2)
	assert.Equal(t, ideas.ID, stored[0].ID, "new nodes go to the head")
	assert.Equal(t, notes.ID, stored[1].ID)

	assert.True(t, f.o.Editor().Active())
	assert.Equal(t, ideas.ID, f.o.Editor().NodeID())

	crumbs := f.o.Navigation().Breadcrumbs()
	require.Len(t, crumbs, 1)
	assert.Equal(t, notes.ID, crumbs[0].ID)
}

func TestCreateBlankTitleIsNoop(t *testing.T) {
	for _, title := range []string{"", "   ", "\t\n"} {
		f := newFixture(t)
		_, ok, err := f.o.CreateFile(title)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, f.persisted())
	}
}

func TestCreateUnknownKindBecomesFile(t *testing.T) {
	f := newFixture(t)
	n, ok, err := f.o.Create(types.Kind("widget"), "Thing")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, types.KindFile, n.Kind)
}

func TestCreateInVanishedFolderIsNoop(t *testing.T) {
	f := newFixture(t, nestedSeed()...)
	require.True(t, f.o.Navigation().Enter("B"))

	// Another actor removes B behind our back.
	require.NoError(t, f.repo.Save(key, []types.Node{folder("A", "", "Alpha")}))
	f.o.Reload()

	_, ok, err := f.o.CreateFile("Lost")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Len(t, f.persisted(), 1)
}

func TestCreateFlushesPreviousEditor(t *testing.T) {
	f := newFixture(t)
	first, _, err := f.o.CreateFile("First")
	require.NoError(t, err)
	f.o.Editor().SetContent("<p>draft</p>")

	second, _, err := f.o.CreateFile("Second")
	require.NoError(t, err)
	assert.Equal(t, second.ID, f.o.Editor().NodeID())

	got, ok := f.o.Node(first.ID)
	require.True(t, ok)
	assert.Equal(t, "<p>draft</p>", got.Content)
}

func TestCreateSaveFailureKeepsSnapshot(t *testing.T) {
	o := New(key, failingRepo{})
	_, ok, err := o.CreateFolder("Notes")
	require.Error(t, err)
	assert.False(t, ok)
	assert.Empty(t, o.Nodes())
}

func TestDeletePrompt(t *testing.T) {
	assert.Equal(t, `Delete folder "Alpha" and all its contents?`, DeletePrompt(folder("A", "", "Alpha")))
	assert.Equal(t, `Delete page "Gamma"?`, DeletePrompt(file("c", "", "Gamma")))
}

func TestDeleteFolderCascades(t *testing.T) {
	f := newFixture(t, nestedSeed()...)
	descendants := tree.DescendantIDs(f.o.Nodes(), "A")
	require.Len(t, descendants, 3)

	var prompt string
	n, err := f.o.Delete("A", ConfirmFunc(func(p string) bool {
		prompt = p
		return true
	}))
	require.NoError(t, err)
	assert.Equal(t, len(descendants)+1, n)
	assert.Equal(t, `Delete folder "Alpha" and all its contents?`, prompt)

	stored := f.persisted()
	require.Len(t, stored, 1)
	assert.Equal(t, "e", stored[0].ID)
}

func TestDeleteFileRemovesOnlyIt(t *testing.T) {
	f := newFixture(t, nestedSeed()...)
	n, err := f.o.Delete("c", AlwaysConfirm)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Len(t, f.persisted(), 4)
	_, ok := f.o.Node("c")
	assert.False(t, ok)
}

func TestDeleteNotConfirmed(t *testing.T) {
	tests := []struct {
		name    string
		confirm Confirmer
	}{
		{name: "declined", confirm: ConfirmFunc(func(string) bool { return false })},
		{name: "nil confirmer", confirm: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nestedSeed()...)
			n, err := f.o.Delete("A", tt.confirm)
			require.NoError(t, err)
			assert.Zero(t, n)
			assert.Len(t, f.persisted(), 5)
		})
	}
}

func TestDeleteUnknownIDIsNoop(t *testing.T) {
	f := newFixture(t, nestedSeed()...)
	asked := false
	n, err := f.o.Delete("nope", ConfirmFunc(func(string) bool {
		asked = true
		return true
	}))
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.False(t, asked, "no prompt for a missing node")
}

func TestDeleteDiscardsEditorOfRemovedNode(t *testing.T) {
	f := newFixture(t, nestedSeed()...)
	ok, err := f.o.Editor().OpenID("c")
	require.NoError(t, err)
	require.True(t, ok)
	f.o.Editor().SetTitle("unsaved")

	_, err = f.o.Delete("A", AlwaysConfirm)
	require.NoError(t, err)
	assert.False(t, f.o.Editor().Active())

	// Closing afterwards must not resurrect the node.
	require.NoError(t, f.o.Editor().Close())
	for _, n := range f.persisted() {
		assert.NotEqual(t, "c", n.ID)
	}
}

func TestDeleteKeepsEditorOfSurvivingNode(t *testing.T) {
	f := newFixture(t, nestedSeed()...)
	_, err := f.o.Editor().OpenID("e")
	require.NoError(t, err)

	_, err = f.o.Delete("A", AlwaysConfirm)
	require.NoError(t, err)
	assert.True(t, f.o.Editor().Active())
	assert.Equal(t, "e", f.o.Editor().NodeID())
}

func TestDeleteCurrentFolderMovesUp(t *testing.T) {
	f := newFixture(t, nestedSeed()...)
	require.True(t, f.o.Navigation().Enter("B"))

	_, err := f.o.Delete("B", AlwaysConfirm)
	require.NoError(t, err)
	assert.Equal(t, "A", f.o.Navigation().Current())
}

func TestDeleteSaveFailureKeepsSnapshot(t *testing.T) {
	o := New(key, failingRepo{nodes: nestedSeed()})
	n, err := o.Delete("A", AlwaysConfirm)
	require.Error(t, err)
	assert.Zero(t, n)
	assert.Len(t, o.Nodes(), 5)
}
