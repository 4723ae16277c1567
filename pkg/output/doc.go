// Package output renders install and uninstall runs as human-readable text.
//
// Each file gets one line prefixed with a marker for its kind:
//
//	✓  nothing to do
//	⚠  skipped, or an existing target was moved to a backup
//	→  a link was (or would be) created or removed
//
// Lines are grouped by category and followed by a summary. When color is
// enabled the markers and headings are styled with the lipgloss styles in
// the styles package; otherwise the same text is written plain.
package output
