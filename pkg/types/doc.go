// Package types holds the values shared between the reconciler, the
// renderers and the CLI: the filesystem interface, link specs, per-file
// outcomes and run results.
package types
