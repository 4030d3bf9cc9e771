// Package plan computes topological build order over workspace packages
// and tracks per-package completion state, including transitive skipping
// of dependents when a package fails to build.
package plan
