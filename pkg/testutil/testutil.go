package testutil

import (
	"crypto/sha256"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TempDir returns a fresh temporary directory with every symlink in its
// path resolved, so that paths built from it compare equal to the
// canonical roots the reconciler works with.
func TempDir(t *testing.T) string {
	t.Helper()

	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

// CreateFile creates a file with the given content in the specified directory.
// It fails the test if the file cannot be created.
func CreateFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755), "create parent of %s", path)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "create %s", path)
	return path
}

// CreateDir creates a directory in the specified parent directory.
func CreateDir(t *testing.T, parent, name string) string {
	t.Helper()

	path := filepath.Join(parent, name)
	require.NoError(t, os.MkdirAll(path, 0755), "create dir %s", path)
	return path
}

// CreateSymlink creates a symbolic link pointing to target.
func CreateSymlink(t *testing.T, target, link string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(link), 0755))
	require.NoError(t, os.Symlink(target, link), "symlink %s -> %s", link, target)
}

// NewRepo creates a dotfiles repository. Keys are "category/name".
func NewRepo(t *testing.T, files map[string]string) string {
	t.Helper()

	repo := TempDir(t)
	for rel, content := range files {
		CreateFile(t, repo, rel, content)
	}
	return repo
}

// SymlinkExists checks if a path is a symbolic link.
func SymlinkExists(t *testing.T, path string) bool {
	t.Helper()

	info, err := os.Lstat(path)
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeSymlink != 0
}

// ReadFile reads the content of a file and returns it as a string.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	require.NoError(t, err, "read %s", path)
	return string(content)
}

// AssertFileContent checks that a regular file exists and has the expected content.
func AssertFileContent(t *testing.T, path, expected string) {
	t.Helper()

	info, err := os.Lstat(path)
	require.NoError(t, err, "lstat %s", path)
	assert.True(t, info.Mode().IsRegular(), "%s is not a regular file", path)
	assert.Equal(t, expected, ReadFile(t, path))
}

// AssertLinkedTo checks that link is a symlink whose resolved path is the
// resolved path of want.
func AssertLinkedTo(t *testing.T, link, want string) {
	t.Helper()

	require.True(t, SymlinkExists(t, link), "%s is not a symlink", link)

	got, err := filepath.EvalSymlinks(link)
	require.NoError(t, err, "resolve %s", link)
	wantResolved, err := filepath.EvalSymlinks(want)
	require.NoError(t, err, "resolve %s", want)
	assert.Equal(t, wantResolved, got)
}

// AssertNoEntry checks that nothing, not even a dangling symlink, exists at path.
func AssertNoEntry(t *testing.T, path string) {
	t.Helper()

	_, err := os.Lstat(path)
	assert.ErrorIs(t, err, fs.ErrNotExist, "%s exists but should not", path)
}

// Snapshot records every entry below root: directories, symlink targets and
// a SHA256 of each regular file with its permissions. Two equal snapshots
// mean nothing under root changed.
func Snapshot(t *testing.T, root string) map[string]string {
	t.Helper()

	snap := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		switch {
		case d.Type()&fs.ModeSymlink != 0:
			target, err := os.Readlink(path)
			if err != nil {
				return err
			}
			snap[rel] = "link:" + target
		case d.IsDir():
			snap[rel] = "dir"
		default:
			info, err := d.Info()
			if err != nil {
				return err
			}
			sum, err := CalculateFileChecksum(path)
			if err != nil {
				return err
			}
			snap[rel] = fmt.Sprintf("file:%s:%o", sum, info.Mode().Perm())
		}
		return nil
	})
	require.NoError(t, err, "snapshot %s", root)
	return snap
}

// CalculateFileChecksum calculates SHA256 checksum of a file
func CalculateFileChecksum(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = file.Close()
	}()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", hash.Sum(nil)), nil
}
