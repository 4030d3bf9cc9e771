// Package builder runs the build step for a single hybrid package:
// dependency override resolution, cargo config regeneration, environment
// assembly, and the cargo subprocess itself.
//
// A known cost of the patch-based approach: cargo re-resolves and rebuilds
// patched path dependencies while building each downstream package. The
// per-package target dirs keep those rebuilds from trampling each other,
// but the repeated work itself is accepted.
package builder
