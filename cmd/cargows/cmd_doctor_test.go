package main

import (
	"strings"
	"testing"

	"github.com/fbkclanna/cargows/internal/testutil"
)

func TestRunDoctor_allChecksPass(t *testing.T) {
	wsDir := t.TempDir()
	testutil.FakeCargo(t)
	testutil.WriteHybridPackage(t, wsDir, "pkg_a", nil)

	stdout, _, err := runCargows(t, "--root", wsDir, "doctor")
	if err != nil {
		t.Fatalf("doctor failed: %v\n%s", err, stdout)
	}
	if !strings.Contains(stdout, "All checks passed.") {
		t.Errorf("unexpected output:\n%s", stdout)
	}
	if !strings.Contains(stdout, "1 hybrid packages") {
		t.Errorf("expected package count in output:\n%s", stdout)
	}
}

func TestRunDoctor_cargoMissing(t *testing.T) {
	wsDir := t.TempDir()
	t.Setenv("PATH", t.TempDir())

	stdout, _, err := runCargows(t, "--root", wsDir, "doctor")
	if err == nil {
		t.Fatal("expected doctor to fail without cargo")
	}
	if !strings.Contains(stdout, "NOT FOUND") {
		t.Errorf("expected NOT FOUND in output:\n%s", stdout)
	}
}
