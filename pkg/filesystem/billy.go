package filesystem

import (
	"io/fs"

	"github.com/arthur-debert/dotlink/pkg/types"
	"github.com/go-git/go-billy/v5"
)

// billyFS implements types.FS on top of a go-billy filesystem. Paths are
// passed through unchanged, so the wrapped filesystem should be rooted at
// "/" (osfs.Default or memfs.New()).
type billyFS struct {
	fs billy.Filesystem
}

// NewBilly wraps a go-billy filesystem. It exists for in-memory runs: tests
// pass it a memfs tree through reconcile.Options.FS, while the command line
// always uses NewOS.
func NewBilly(bfs billy.Filesystem) types.FS {
	return &billyFS{fs: bfs}
}

func (b *billyFS) Stat(name string) (fs.FileInfo, error) {
	return b.fs.Stat(name)
}

func (b *billyFS) Lstat(name string) (fs.FileInfo, error) {
	return b.fs.Lstat(name)
}

func (b *billyFS) Symlink(oldname, newname string) error {
	return b.fs.Symlink(oldname, newname)
}

func (b *billyFS) Readlink(name string) (string, error) {
	return b.fs.Readlink(name)
}

func (b *billyFS) EvalSymlinks(path string) (string, error) {
	return evalSymlinks(b, path)
}

func (b *billyFS) Remove(name string) error {
	return b.fs.Remove(name)
}

func (b *billyFS) Rename(oldpath, newpath string) error {
	return b.fs.Rename(oldpath, newpath)
}
