package crate

import "sort"

// FileName is the secondary manifest file looked up in each package directory.
const FileName = "Cargo.toml"

// Manifest represents the subset of a Cargo.toml manifest this tool reads.
type Manifest struct {
	Package           Section        `toml:"package"`
	Dependencies      map[string]any `toml:"dependencies"`
	BuildDependencies map[string]any `toml:"build-dependencies"`
}

// Section is the [package] table of a Cargo.toml.
type Section struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// DependencyNames returns the sorted, deduplicated names declared under
// [dependencies] and [build-dependencies].
func (m *Manifest) DependencyNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, deps := range []map[string]any{m.Dependencies, m.BuildDependencies} {
		for n := range deps {
			if n == "" || seen[n] {
				continue
			}
			seen[n] = true
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}
