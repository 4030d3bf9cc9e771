package plan

import (
	"reflect"
	"testing"
)

func mustNew(t *testing.T, declared map[string][]string) *Plan {
	t.Helper()
	p, err := New(declared)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return p
}

func TestNew_dropsExternalDeps(t *testing.T) {
	p := mustNew(t, map[string][]string{
		"b": {"a", "serde", "tokio"},
		"a": nil,
	})
	if got := p.Deps("b"); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("Deps(b) = %v, want [a]", got)
	}
}

func TestNew_cycle(t *testing.T) {
	_, err := New(map[string][]string{
		"a": {"b"},
		"b": {"c"},
		"c": {"a"},
	})
	if err == nil {
		t.Fatal("New() expected cycle error")
	}
}

func TestReady_ordering(t *testing.T) {
	p := mustNew(t, map[string][]string{
		"zeta":  nil,
		"alpha": nil,
		"mid":   {"alpha"},
	})
	if got := p.Ready(); !reflect.DeepEqual(got, []string{"alpha", "zeta"}) {
		t.Errorf("Ready() = %v, want [alpha zeta]", got)
	}
}

func TestLifecycle_chain(t *testing.T) {
	p := mustNew(t, map[string][]string{
		"a": nil,
		"b": {"a"},
		"c": {"b"},
	})

	if got := p.Ready(); !reflect.DeepEqual(got, []string{"a"}) {
		t.Fatalf("Ready() = %v, want [a]", got)
	}
	if err := p.Start("a"); err != nil {
		t.Fatal(err)
	}
	if got := p.Ready(); got != nil {
		t.Errorf("Ready() while building = %v, want none", got)
	}
	if err := p.Succeed("a"); err != nil {
		t.Fatal(err)
	}
	if got := p.Ready(); !reflect.DeepEqual(got, []string{"b"}) {
		t.Errorf("Ready() = %v, want [b]", got)
	}

	_ = p.Start("b")
	_ = p.Succeed("b")
	_ = p.Start("c")
	_ = p.Succeed("c")

	if !p.Done() {
		t.Error("Done() = false after all succeeded")
	}
	s, f, k := p.Counts()
	if s != 3 || f != 0 || k != 0 {
		t.Errorf("Counts() = %d/%d/%d", s, f, k)
	}
}

func TestFail_propagatesSkip(t *testing.T) {
	p := mustNew(t, map[string][]string{
		"base":  nil,
		"mid":   {"base"},
		"leaf":  {"mid"},
		"other": nil,
	})

	_ = p.Start("base")
	skipped, err := p.Fail("base")
	if err != nil {
		t.Fatalf("Fail() error: %v", err)
	}
	if !reflect.DeepEqual(skipped, []string{"leaf", "mid"}) {
		t.Errorf("skipped = %v, want [leaf mid]", skipped)
	}
	if p.State("other") != Pending {
		t.Errorf("other = %s, want pending", p.State("other"))
	}

	_ = p.Start("other")
	_ = p.Succeed("other")
	if !p.Done() {
		t.Error("Done() = false, remaining packages should all be terminal")
	}
	s, f, k := p.Counts()
	if s != 1 || f != 1 || k != 2 {
		t.Errorf("Counts() = %d/%d/%d, want 1/1/2", s, f, k)
	}
}

func TestTransition_errors(t *testing.T) {
	p := mustNew(t, map[string][]string{"a": nil})

	if err := p.Succeed("a"); err == nil {
		t.Error("Succeed() before Start() should fail")
	}
	if err := p.Start("ghost"); err == nil {
		t.Error("Start() of unknown package should fail")
	}
	_ = p.Start("a")
	if err := p.Start("a"); err == nil {
		t.Error("double Start() should fail")
	}
}

func TestSelfDependencyIgnored(t *testing.T) {
	p := mustNew(t, map[string][]string{"a": {"a"}})
	if got := p.Ready(); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("Ready() = %v, want [a]", got)
	}
}
