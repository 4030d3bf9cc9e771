// Package overrides decides which of a package's declared dependencies
// resolve to locally built crates and writes the matching
// [patch.crates-io] entries into the package's .cargo/config.toml,
// preserving any configuration the user authored there.
package overrides
