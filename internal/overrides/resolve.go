package overrides

import "sort"

// Resolve returns the subset of declared dependency names that have a known
// local path, sorted and deduplicated. Names without a path are left for
// cargo's normal registry resolution.
func Resolve(declared []string, paths map[string]string) []string {
	seen := make(map[string]bool, len(declared))
	var names []string
	for _, d := range declared {
		if d == "" || seen[d] {
			continue
		}
		seen[d] = true
		if _, ok := paths[d]; ok {
			names = append(names, d)
		}
	}
	sort.Strings(names)
	return names
}

// MergePaths combines path maps left to right, later maps taking precedence
// per name. Used to layer installed-prefix discovery, workspace lookup, and
// the build record (the record last, so it always wins).
func MergePaths(maps ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}
