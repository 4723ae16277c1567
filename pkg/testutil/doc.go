// Package testutil provides helpers for testing dotlink against real
// temporary directories.
//
// Key components:
//   - TempDir: a canonical (symlink-free) temporary directory
//   - NewRepo: builds a dotfiles repository from "category/name" -> content
//   - Snapshot: a comparable view of a directory tree, used to prove that a
//     dry run touched nothing
//
// All helpers fail the test immediately on setup errors.
package testutil
