// Tests for the SQLite backend.
package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/folio/pkg/types"
)

func attached(t *testing.T, dir string) *Backend {
	t.Helper()
	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}))
	t.Cleanup(func() { b.Detach() })
	return b
}

func TestBackend_Attach(t *testing.T) {
	tmpDir := t.TempDir()

	b := NewBackend()
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: tmpDir,
	}

	err := b.Attach(config)
	if err != nil {
		t.Fatalf("Attach failed: %v", err)
	}

	dbPath := filepath.Join(tmpDir, DBFileName)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("%s not created", DBFileName)
	}

	err = b.Attach(config)
	if err != types.ErrAlreadyAttached {
		t.Errorf("expected ErrAlreadyAttached, got %v", err)
	}

	b.Detach()
}

func TestBackend_AttachRejectsInvalidConfig(t *testing.T) {
	b := NewBackend()
	err := b.Attach(types.Config{Backend: "postgres", DataDir: t.TempDir()})
	assert.ErrorIs(t, err, types.ErrBackendUnknown)
}

func TestBackend_Detach(t *testing.T) {
	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))

	require.NoError(t, b.Detach())
	require.NoError(t, b.Detach(), "Detach should be idempotent")

	_, err := b.Get("k")
	assert.ErrorIs(t, err, types.ErrStoreDetached)
	assert.ErrorIs(t, b.Put("k", []byte("v")), types.ErrStoreDetached)
	_, err = b.Keys()
	assert.ErrorIs(t, err, types.ErrStoreDetached)
}

func TestBackend_GetPut(t *testing.T) {
	b := attached(t, t.TempDir())

	_, err := b.Get("missing")
	assert.ErrorIs(t, err, types.ErrNotFound)

	require.NoError(t, b.Put("k", []byte(`[{"id":"1"}]`)))
	got, err := b.Get("k")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, string(got))

	require.NoError(t, b.Put("k", []byte(`[]`)))
	got, err = b.Get("k")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got), "last put wins")
}

func TestBackend_EmptyKeyRejected(t *testing.T) {
	b := attached(t, t.TempDir())
	assert.ErrorIs(t, b.Put("", []byte("x")), types.ErrInvalidKey)
	_, err := b.Get("")
	assert.ErrorIs(t, err, types.ErrInvalidKey)
}

func TestBackend_Keys(t *testing.T) {
	b := attached(t, t.TempDir())

	keys, err := b.Keys()
	require.NoError(t, err)
	assert.Empty(t, keys)

	require.NoError(t, b.Put("b", []byte("2")))
	require.NoError(t, b.Put("a", []byte("1")))
	keys, err = b.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)
}

func TestBackend_PersistsAcrossAttach(t *testing.T) {
	dir := t.TempDir()

	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}))
	require.NoError(t, b.Put("k", []byte("v")))
	require.NoError(t, b.Detach())

	b2 := attached(t, dir)
	got, err := b2.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}
