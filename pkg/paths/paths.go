package paths

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/types"
)

// Environment variable names
const (
	// EnvDotfilesRoot is the primary environment variable for the repository location
	EnvDotfilesRoot = "DOTFILES_ROOT"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// BackupSuffix is appended to a target's name when it is moved aside.
const BackupSuffix = ".backup"

// FindRepoRoot determines the repository root using the following priority:
// 1. DOTFILES_ROOT environment variable (if set)
// 2. Git repository root (found via 'git rev-parse --show-toplevel')
// 3. Current working directory (fallback)
//
// The bool result reports whether the working directory fallback was used.
func FindRepoRoot() (string, bool, error) {
	logger := logging.GetLogger("paths")

	if root := os.Getenv(EnvDotfilesRoot); root != "" {
		logger.Debug().Str("root", root).Msg("Using DOTFILES_ROOT")
		return expandHome(root), false, nil
	}

	gitRoot, err := findGitRoot()
	if err == nil && gitRoot != "" {
		logger.Debug().Str("root", gitRoot).Msg("Using git toplevel")
		return gitRoot, false, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrFileAccess, "failed to get current directory")
	}

	logger.Debug().Str("root", cwd).Msg("Falling back to working directory")
	return cwd, true, nil
}

// findGitRoot attempts to find the root of the current git repository
func findGitRoot() (string, error) {
	output, err := exec.Command("git", "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return "", err
	}

	gitRoot := strings.TrimSpace(string(output))
	if gitRoot == "" {
		return "", errors.New(errors.ErrNotFound, "git root is empty")
	}
	return gitRoot, nil
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := GetHomeDirectory()
	if err != nil {
		return path
	}

	if len(path) == 1 {
		return homeDir
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}

// GetHomeDirectory returns the user's home directory with proper error handling
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		if home := os.Getenv(EnvHome); home != "" {
			return home, nil
		}
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get home directory")
	}
	return homeDir, nil
}

// Canonicalize expands ~, makes path absolute and resolves every symlink in
// it. The result must name an existing directory.
func Canonicalize(fsys types.FS, path string) (string, error) {
	if err := ValidatePath(path); err != nil {
		return "", errors.Wrap(err, errors.ErrConfigInvalid, "invalid root path")
	}

	abs, err := filepath.Abs(expandHome(path))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrConfigInvalid, "failed to get absolute path for %s", path)
	}

	resolved, err := fsys.EvalSymlinks(abs)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrConfigInvalid, "cannot resolve %s", abs).
			WithDetail("path", abs)
	}

	info, err := fsys.Stat(resolved)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrConfigInvalid, "cannot stat %s", resolved)
	}
	if !info.IsDir() {
		return "", errors.Newf(errors.ErrConfigInvalid, "%s is not a directory", resolved).
			WithDetail("path", resolved)
	}

	return resolved, nil
}

// CategoryDir returns the repository directory holding one category.
func CategoryDir(repoRoot, category string) string {
	return filepath.Join(repoRoot, category)
}

// SourcePath returns the repository copy of a managed file.
func SourcePath(repoRoot, category, name string) string {
	return filepath.Join(repoRoot, category, name)
}

// TargetPath returns where a managed file is linked in the home root.
func TargetPath(homeRoot, name string) string {
	return filepath.Join(homeRoot, name)
}

// BackupPath returns the sibling path a conflicting target is moved to.
func BackupPath(target string) string {
	return filepath.Join(filepath.Dir(target), filepath.Base(target)+BackupSuffix)
}
