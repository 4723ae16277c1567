// Package reconcile links a fixed set of dotfiles from a repository into a
// home directory and removes those links again.
//
// # Install
//
// For every category of the mapping, in order, and every file of the
// category, in order:
//
//   - a missing category directory reports category-missing for each of its
//     files
//   - a missing source reports source-missing
//   - a target that is already a symlink resolving to the source reports
//     already-linked and is left alone
//   - any other occupant of the target is moved to <target>.backup and the
//     link is created (backed-up-and-linked)
//   - a free target gets the link (linked)
//
// Links point at the source path as built from the repository root, so
// moving the repository breaks them.
//
// An existing <target>.backup is deleted before the move. That earlier
// backup is lost for good.
//
// # Uninstall
//
// Only symlinks are removed. Regular files and directories with a managed
// name are reported and kept, and backups are never restored.
//
// # Dry runs
//
// With DryRun set no call that changes the filesystem is made, but the
// outcomes are the ones a real run would report.
package reconcile
