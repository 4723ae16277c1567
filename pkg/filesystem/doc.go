// Package filesystem provides filesystem implementations for dotlink.
//
// This package contains implementations of the types.FS interface: the
// standard OS filesystem and an adapter over any go-billy filesystem, which
// tests use with an in-memory tree.
package filesystem
