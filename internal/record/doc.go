// Package record tracks which packages have been built during the current
// invocation and where they were installed. The record is scoped to one
// build run and is never persisted.
package record
