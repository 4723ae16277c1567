package types

import (
	"io/fs"
)

// FS is the filesystem interface the reconciler runs against.
type FS interface {
	// Stat follows symlinks; used to check that sources and categories exist.
	Stat(name string) (fs.FileInfo, error)

	// Lstat does not follow symlinks; used on every target.
	Lstat(name string) (fs.FileInfo, error)

	// Symlink operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)

	// EvalSymlinks returns path with every symlink resolved. It fails when
	// any component does not exist.
	EvalSymlinks(path string) (string, error)

	Remove(name string) error
	Rename(oldpath, newpath string) error
}
