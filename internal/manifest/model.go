package manifest

import "sort"

// FileName is the primary manifest file looked up in each package directory.
const FileName = "package.xml"

// BuildTypeAmentCargo marks packages that are built with cargo through the
// ament install layout.
const BuildTypeAmentCargo = "ament_cargo"

// Package represents a parsed package.xml manifest.
type Package struct {
	Name         string
	BuildType    string
	Depends      []string // <depend>
	BuildDepends []string // <build_depend>
	RunDepends   []string // <run_depend> and <exec_depend>
	TestDepends  []string // <test_depend>
}

// DependencyNames returns the sorted, deduplicated union of the build-time
// and run-time dependency names. Test dependencies are excluded: the test
// phase is not orchestrated by this tool.
func (p *Package) DependencyNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, group := range [][]string{p.Depends, p.BuildDepends, p.RunDepends} {
		for _, n := range group {
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
