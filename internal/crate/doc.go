// Package crate handles parsing of Cargo.toml files, the secondary manifest
// that names a crate and declares its registry dependencies.
package crate
