// Package config loads dotlink's settings and the category mapping.
//
// Defaults, including the mapping, come from embedded/defaults.toml and are
// loaded with koanf. DOTLINK_* environment variables may override the plain
// settings (home, repo, dry_run, format) but never the mapping, which is
// fixed for the lifetime of the binary.
package config
