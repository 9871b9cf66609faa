package filestore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/folio/pkg/types"
)

func attach(t *testing.T) (*Backend, string) {
	t.Helper()
	dir := t.TempDir()
	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendFiles, DataDir: dir}))
	t.Cleanup(func() { b.Detach() })
	return b, dir
}

func TestBackend_PutWritesOneFilePerKey(t *testing.T) {
	b, dir := attach(t)

	require.NoError(t, b.Put(types.KeyKnowledge, []byte(`[]`)))

	data, err := os.ReadFile(filepath.Join(dir, DirName, types.KeyKnowledge+".json"))
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
}

func TestBackend_GetMissing(t *testing.T) {
	b, _ := attach(t)
	_, err := b.Get("missing")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestBackend_KeysAreEscaped(t *testing.T) {
	b, dir := attach(t)

	require.NoError(t, b.Put("a/b", []byte("1")))
	require.NoError(t, b.Put("plain", []byte("2")))
	// Leftover temp file from an interrupted write.
	require.NoError(t, os.WriteFile(filepath.Join(dir, DirName, ".plain.json-123.tmp"), []byte("x"), 0o644))

	keys, err := b.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"a/b", "plain"}, keys)

	got, err := b.Get("a/b")
	require.NoError(t, err)
	assert.Equal(t, "1", string(got))
}

func TestBackend_DotKeysAreListed(t *testing.T) {
	b, dir := attach(t)

	require.NoError(t, b.Put(".profile", []byte("v")))
	require.NoError(t, b.Put("..", []byte("w")))

	keys, err := b.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"..", ".profile"}, keys)

	got, err := b.Get(".profile")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))

	entries, err := os.ReadDir(filepath.Join(dir, DirName))
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), "."), "file %s", e.Name())
	}
}

func TestBackend_Detached(t *testing.T) {
	b, _ := attach(t)
	require.NoError(t, b.Detach())

	_, err := b.Get("k")
	assert.ErrorIs(t, err, types.ErrStoreDetached)
	assert.ErrorIs(t, b.Put("k", nil), types.ErrStoreDetached)
}
