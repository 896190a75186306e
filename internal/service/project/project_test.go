package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func TestListEntriesSortedAndDisjoint(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"b.md":        "b",
		"a.txt":       "a",
		"src/main.rs": "fn main() {}",
		"docs/x.md":   "x",
	})
	require.NoError(t, os.Mkdir(filepath.Join(root, "empty"), 0755))

	info, err := ListEntries(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.md"}, info.Files)
	assert.Equal(t, []string{"docs", "empty", "src"}, info.Directories)

	again, err := ListEntries(root)
	require.NoError(t, err)
	assert.Equal(t, info, again)
}

func TestListEntriesEmptyDirectory(t *testing.T) {
	info, err := ListEntries(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, []string{}, info.Files)
	assert.Equal(t, []string{}, info.Directories)
}

func TestListEntriesRejectsFilesAndMissingPaths(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.md": "a"})

	_, err := ListEntries(filepath.Join(root, "a.md"))
	require.Error(t, err)

	_, err = ListEntries(filepath.Join(root, "missing"))
	require.Error(t, err)
}

func TestWriteThenReadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.md")
	content := "# Notes\n\nünïcode ✓\n"

	require.NoError(t, WriteFile(path, content))
	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, got)

	require.NoError(t, WriteFile(path, ""))
	got, err = ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestReadFileRejectsInvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bin.dat")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xfe, 0x00}, 0644))

	_, err := ReadFile(path)
	require.Error(t, err)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.md"))
	require.Error(t, err)
}

func TestWriteFileMissingDirectory(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "missing", "a.md"), "x")
	require.Error(t, err)
}

func TestListEntriesFollowsLinksAndSkipsBrokenOnes(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"real.md":     "x",
		"docs/one.md": "one",
	})
	require.NoError(t, os.Symlink(filepath.Join(root, "docs"), filepath.Join(root, "docs-link")))
	require.NoError(t, os.Symlink(filepath.Join(root, "real.md"), filepath.Join(root, "real-link.md")))
	require.NoError(t, os.Symlink(filepath.Join(root, "missing"), filepath.Join(root, "dangling")))

	info, err := ListEntries(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"real-link.md", "real.md"}, info.Files)
	assert.Equal(t, []string{"docs", "docs-link"}, info.Directories)
}
