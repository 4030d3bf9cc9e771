package plan

import (
	"fmt"
	"sort"
	"strings"
)

// State is the lifecycle state of one package within a build run.
type State int

const (
	Pending State = iota
	Building
	Succeeded
	Failed
	Skipped
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Building:
		return "building"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	case Skipped:
		return "skipped"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Plan tracks build order and completion state over a set of packages.
// Edges exist only for dependencies that are themselves packages in the
// plan; everything else is resolved externally by cargo.
type Plan struct {
	names      []string            // sorted package names
	deps       map[string][]string // in-plan dependencies per package
	dependents map[string][]string // reverse edges
	state      map[string]State
}

// New builds a plan from a map of package name to declared dependency
// names. Dependency names that are not themselves keys of the map are
// dropped. Cycles are an error.
func New(declared map[string][]string) (*Plan, error) {
	p := &Plan{
		deps:       make(map[string][]string, len(declared)),
		dependents: make(map[string][]string, len(declared)),
		state:      make(map[string]State, len(declared)),
	}
	for name := range declared {
		p.names = append(p.names, name)
		p.state[name] = Pending
	}
	sort.Strings(p.names)

	for _, name := range p.names {
		seen := make(map[string]bool)
		for _, d := range declared[name] {
			if d == name || seen[d] {
				continue
			}
			if _, inPlan := p.state[d]; !inPlan {
				continue
			}
			seen[d] = true
			p.deps[name] = append(p.deps[name], d)
			p.dependents[d] = append(p.dependents[d], name)
		}
		sort.Strings(p.deps[name])
	}
	for _, name := range p.names {
		sort.Strings(p.dependents[name])
	}

	if cycle := p.findCycle(); cycle != nil {
		return nil, fmt.Errorf("dependency cycle: %s", strings.Join(cycle, " -> "))
	}
	return p, nil
}

// findCycle runs Kahn's algorithm; leftover nodes form at least one cycle.
func (p *Plan) findCycle() []string {
	indegree := make(map[string]int, len(p.names))
	for _, name := range p.names {
		indegree[name] = len(p.deps[name])
	}

	queue := make([]string, 0, len(p.names))
	for _, name := range p.names {
		if indegree[name] == 0 {
			queue = append(queue, name)
		}
	}
	processed := 0
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		processed++
		for _, d := range p.dependents[n] {
			indegree[d]--
			if indegree[d] == 0 {
				queue = append(queue, d)
			}
		}
	}
	if processed == len(p.names) {
		return nil
	}

	var cycle []string
	for _, name := range p.names {
		if indegree[name] > 0 {
			cycle = append(cycle, name)
		}
	}
	return cycle
}

// Names returns all package names in the plan, sorted.
func (p *Plan) Names() []string {
	return append([]string(nil), p.names...)
}

// Deps returns the in-plan dependencies of a package.
func (p *Plan) Deps(name string) []string {
	return append([]string(nil), p.deps[name]...)
}

// State returns the current state of a package.
func (p *Plan) State(name string) State {
	return p.state[name]
}

// Ready returns the pending packages whose in-plan dependencies have all
// succeeded, in name order.
func (p *Plan) Ready() []string {
	var ready []string
	for _, name := range p.names {
		if p.state[name] != Pending {
			continue
		}
		ok := true
		for _, d := range p.deps[name] {
			if p.state[d] != Succeeded {
				ok = false
				break
			}
		}
		if ok {
			ready = append(ready, name)
		}
	}
	return ready
}

// Start transitions a package from Pending to Building.
func (p *Plan) Start(name string) error {
	return p.transition(name, Pending, Building)
}

// Succeed transitions a package from Building to Succeeded.
func (p *Plan) Succeed(name string) error {
	return p.transition(name, Building, Succeeded)
}

// Fail marks a building package as Failed and transitively marks its
// pending dependents as Skipped. Returns the skipped names, sorted.
func (p *Plan) Fail(name string) ([]string, error) {
	if err := p.transition(name, Building, Failed); err != nil {
		return nil, err
	}

	var skipped []string
	stack := append([]string(nil), p.dependents[name]...)
	visited := make(map[string]bool)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[n] {
			continue
		}
		visited[n] = true
		if p.state[n] == Pending {
			p.state[n] = Skipped
			skipped = append(skipped, n)
		}
		stack = append(stack, p.dependents[n]...)
	}
	sort.Strings(skipped)
	return skipped, nil
}

func (p *Plan) transition(name string, from, to State) error {
	cur, ok := p.state[name]
	if !ok {
		return fmt.Errorf("unknown package %q", name)
	}
	if cur != from {
		return fmt.Errorf("package %q is %s, expected %s", name, cur, from)
	}
	p.state[name] = to
	return nil
}

// Done reports whether every package has reached a terminal state.
func (p *Plan) Done() bool {
	for _, name := range p.names {
		switch p.state[name] {
		case Pending, Building:
			return false
		}
	}
	return true
}

// Counts returns how many packages succeeded, failed, and were skipped.
func (p *Plan) Counts() (succeeded, failed, skipped int) {
	for _, name := range p.names {
		switch p.state[name] {
		case Succeeded:
			succeeded++
		case Failed:
			failed++
		case Skipped:
			skipped++
		}
	}
	return succeeded, failed, skipped
}
