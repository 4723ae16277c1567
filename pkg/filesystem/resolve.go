package filesystem

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// maxLinkHops matches the Linux MAXSYMLINKS limit.
const maxLinkHops = 40

type linkReader interface {
	Lstat(name string) (fs.FileInfo, error)
	Readlink(name string) (string, error)
}

// evalSymlinks resolves an absolute path one component at a time using only
// Lstat and Readlink, for filesystems that have no native EvalSymlinks.
func evalSymlinks(fsys linkReader, path string) (string, error) {
	if !filepath.IsAbs(path) {
		return "", &fs.PathError{Op: "evalsymlinks", Path: path, Err: fs.ErrInvalid}
	}

	sep := string(filepath.Separator)
	resolved := sep
	pending := splitPath(path)
	hops := 0

	for len(pending) > 0 {
		part := pending[0]
		pending = pending[1:]

		switch part {
		case "", ".":
			continue
		case "..":
			resolved = filepath.Dir(resolved)
			continue
		}

		next := filepath.Join(resolved, part)
		info, err := fsys.Lstat(next)
		if err != nil {
			return "", err
		}
		if info.Mode()&fs.ModeSymlink == 0 {
			resolved = next
			continue
		}

		hops++
		if hops > maxLinkHops {
			return "", fmt.Errorf("evalsymlinks %s: too many links", path)
		}
		target, err := fsys.Readlink(next)
		if err != nil {
			return "", err
		}
		if filepath.IsAbs(target) {
			resolved = sep
		}
		pending = append(splitPath(target), pending...)
	}

	return resolved, nil
}

func splitPath(p string) []string {
	return strings.Split(filepath.ToSlash(p), "/")
}
