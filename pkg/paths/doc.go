// Package paths provides centralized path handling for dotlink.
//
// It handles:
//
//   - Repository root discovery (flag, DOTFILES_ROOT, git toplevel, cwd)
//   - Home directory lookup and ~ expansion
//   - Canonicalization of roots to absolute, symlink-free form
//   - Derivation of source, target and backup paths for a managed file
//
// # Environment Variables
//
//   - DOTFILES_ROOT: repository location when no --repo flag is given
//   - HOME: fallback when the user's home directory cannot be determined
//
// # Path Layout
//
// A managed file named NAME in category CAT maps to:
//
//	source: <repo>/<CAT>/<NAME>
//	target: <home>/<NAME>
//	backup: <home>/<NAME>.backup
package paths
