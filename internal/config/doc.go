// Package config handles parsing and writing of cargows.yaml files.
// The configuration holds workspace-wide build defaults (base directories,
// parallelism, cargo arguments) and per-package overrides such as
// post-build hooks.
package config
