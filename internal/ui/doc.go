// Package ui provides plain-text output helpers: an aligned-column table
// and a thread-safe progress counter for parallel builds.
package ui
