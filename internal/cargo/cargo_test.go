package cargo

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/fbkclanna/cargows/internal/testutil"
)

func TestArgs_passThroughOrdering(t *testing.T) {
	opts := BuildOpts{
		Subcommand:   "ament-build",
		ManifestPath: "/ws/a/Cargo.toml",
		InstallBase:  "/ws/install/a",
		TargetDir:    "/ws/build/a",
		ExtraArgs:    []string{"--release", "--features", "sim"},
	}
	got := Args(opts)
	want := []string{
		"ament-build",
		"--install-base", "/ws/install/a",
		"--",
		"--manifest-path", "/ws/a/Cargo.toml",
		"--target-dir", "/ws/build/a",
		"--quiet",
		"--release", "--features", "sim",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Args() = %v, want %v", got, want)
	}
}

func TestBuild_success(t *testing.T) {
	logPath := testutil.FakeCargo(t)
	dir := t.TempDir()

	err := Build(BuildOpts{
		Executable:   "cargo",
		Subcommand:   "ament-build",
		Dir:          dir,
		ManifestPath: filepath.Join(dir, "Cargo.toml"),
		InstallBase:  filepath.Join(dir, "install"),
		TargetDir:    filepath.Join(dir, "build"),
		Env:          os.Environ(),
	})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	log := testutil.ReadFile(t, logPath)
	if !strings.Contains(log, "ament-build") {
		t.Errorf("invocation log missing subcommand: %q", log)
	}
}

func TestBuild_failureExitCode(t *testing.T) {
	testutil.FakeCargo(t)
	dir := filepath.Join(t.TempDir(), "broken_pkg")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FAKE_CARGO_FAIL", "broken_pkg")

	err := Build(BuildOpts{
		Executable: "cargo",
		Subcommand: "ament-build",
		Dir:        dir,
		Env:        os.Environ(),
	})
	if err == nil {
		t.Fatal("Build() expected failure")
	}
	if code := ExitCode(err); code != 7 {
		t.Errorf("ExitCode() = %d, want 7", code)
	}
}

func TestExitCode_nonExitError(t *testing.T) {
	if code := ExitCode(os.ErrNotExist); code != -1 {
		t.Errorf("ExitCode() = %d, want -1", code)
	}
}

func TestIsInstalled(t *testing.T) {
	testutil.FakeCargo(t)
	if !IsInstalled("cargo") {
		t.Error("IsInstalled(cargo) = false with fake cargo on PATH")
	}
	if IsInstalled("definitely-not-a-real-tool") {
		t.Error("IsInstalled() = true for a missing executable")
	}
}
