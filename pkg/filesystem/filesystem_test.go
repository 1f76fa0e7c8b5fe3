package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talss89/envtmpl/pkg/types"
)

func exercise(t *testing.T, fsys types.FS, root string) {
	t.Helper()

	testFile := filepath.Join(root, "sub", "out.conf")
	require.NoError(t, fsys.MkdirAll(filepath.Dir(testFile), types.DirPerm))

	require.NoError(t, fsys.WriteFile(testFile, []byte("first"), types.FilePerm))
	require.NoError(t, fsys.WriteFile(testFile, []byte("second"), types.FilePerm))

	content, err := fsys.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), content)

	info, err := fsys.Stat(testFile)
	require.NoError(t, err)
	assert.Equal(t, "out.conf", info.Name())
	assert.False(t, info.IsDir())

	entries, err := fsys.ReadDir(filepath.Join(root, "sub"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "out.conf", entries[0].Name())

	_, err = fsys.ReadFile(filepath.Join(root, "sub"))
	assert.Error(t, err)

	assert.Error(t, fsys.WriteFile(filepath.Join(root, "sub"), []byte("x"), types.FilePerm))

	_, err = fsys.Stat(filepath.Join(root, "missing"))
	assert.True(t, os.IsNotExist(err))
}

func TestOS(t *testing.T) {
	exercise(t, NewOS(), t.TempDir())
}

func TestMemory(t *testing.T) {
	exercise(t, NewMemory(), "/work")
}

func TestOSWriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	fsys := NewOS()

	for i := 0; i < 3; i++ {
		require.NoError(t, fsys.WriteFile(filepath.Join(dir, "app.conf"), []byte("x"), types.FilePerm))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "app.conf", entries[0].Name())
}

func TestOSWritePermissions(t *testing.T) {
	dir := t.TempDir()
	fsys := NewOS()

	created := filepath.Join(dir, "new.conf")
	require.NoError(t, fsys.WriteFile(created, []byte("x"), types.FilePerm))
	info, err := os.Stat(created)
	require.NoError(t, err)
	assert.Equal(t, types.FilePerm, info.Mode().Perm())

	existing := filepath.Join(dir, "secret.conf")
	require.NoError(t, os.WriteFile(existing, []byte("old"), 0600))
	require.NoError(t, os.Chmod(existing, 0600))
	require.NoError(t, fsys.WriteFile(existing, []byte("new"), types.FilePerm))
	info, err = os.Stat(existing)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
