package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureSubdDir_UnderParent(t *testing.T) {
	base := t.TempDir()

	dir, err := EnsureSubdDir(base, "gophslides")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "gophslides"), dir)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	if runtime.GOOS != "windows" {
		assert.Equal(t, os.FileMode(0o700), info.Mode().Perm(), "library dir holds keys, owner only")
	}

	again, err := EnsureSubdDir(base, "gophslides")
	require.NoError(t, err)
	assert.Equal(t, dir, again)
}

func TestEnsureSubdDir_EmptyParentUsesWorkingDir(t *testing.T) {
	base := t.TempDir()
	t.Chdir(base)

	dir, err := EnsureSubdDir("", "decks")
	require.NoError(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "decks"), dir)
	assert.DirExists(t, dir)
}

func TestEnsureSubdDir_NameTakenByFile(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(base, "gophslides"), []byte("x"), 0o600))

	_, err := EnsureSubdDir(base, "gophslides")
	assert.Error(t, err)
}

func TestWriteFileAtomic_CreatesAndReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.md")

	require.NoError(t, WriteFileAtomic(path, []byte("# One\n"), 0o600))
	require.NoError(t, WriteFileAtomic(path, []byte("# Two\n"), 0o600))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Two\n", string(got))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files are cleaned up")
}

func TestWriteFileAtomic_MissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "deck.md")
	assert.Error(t, WriteFileAtomic(path, []byte("x"), 0o600))
}
