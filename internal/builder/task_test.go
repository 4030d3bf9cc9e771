package builder

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fbkclanna/cargows/internal/overrides"
	"github.com/fbkclanna/cargows/internal/record"
	"github.com/fbkclanna/cargows/internal/testutil"
	"github.com/fbkclanna/cargows/internal/workspace"
)

func newTask(t *testing.T, ws string, pkg *workspace.Package, rec *record.Record) *Task {
	t.Helper()
	return &Task{
		Package:       pkg,
		Record:        rec,
		Executable:    "cargo",
		Subcommand:    "ament-build",
		BuildDir:      filepath.Join(ws, "build", pkg.Name),
		InstallPrefix: filepath.Join(ws, "install", pkg.Name),
	}
}

func identify(t *testing.T, dir string) *workspace.Package {
	t.Helper()
	pkg, err := workspace.Identify(dir)
	if err != nil {
		t.Fatal(err)
	}
	if pkg == nil {
		t.Fatalf("no hybrid package in %s", dir)
	}
	return pkg
}

func TestRun_success(t *testing.T) {
	logPath := testutil.FakeCargo(t)
	ws := t.TempDir()
	dir := testutil.WriteHybridPackage(t, ws, "leaf_pkg", nil)

	task := newTask(t, ws, identify(t, dir), record.New())
	res := task.Run()
	if res.Err != nil {
		t.Fatalf("Run() error: %v", res.Err)
	}
	if res.InstallPrefix != task.InstallPrefix {
		t.Errorf("InstallPrefix = %q", res.InstallPrefix)
	}

	// The subprocess ran in the package dir with the fixed args.
	log := testutil.ReadFile(t, logPath)
	if !strings.Contains(log, "cwd="+dir) {
		t.Errorf("cargo did not run in package dir: %q", log)
	}
	if !strings.Contains(log, "ament-build --install-base "+task.InstallPrefix) {
		t.Errorf("unexpected argv: %q", log)
	}

	// Success registers the package in the resource index.
	if _, err := os.Stat(MarkerPath(task.InstallPrefix, "leaf_pkg")); err != nil {
		t.Errorf("resource index marker missing: %v", err)
	}
}

func TestRun_extraArgsVerbatim(t *testing.T) {
	logPath := testutil.FakeCargo(t)
	ws := t.TempDir()
	dir := testutil.WriteHybridPackage(t, ws, "leaf_pkg", nil)

	task := newTask(t, ws, identify(t, dir), record.New())
	task.ExtraArgs = []string{"--release", "--features", "sim"}
	if res := task.Run(); res.Err != nil {
		t.Fatalf("Run() error: %v", res.Err)
	}

	log := testutil.ReadFile(t, logPath)
	if !strings.Contains(log, "--quiet --release --features sim") {
		t.Errorf("extra args not passed through verbatim after fixed args: %q", log)
	}
}

func TestRun_writesOverridesForBuiltDeps(t *testing.T) {
	testutil.FakeCargo(t)
	ws := t.TempDir()
	dir := testutil.WriteHybridPackage(t, ws, "consumer", []string{"geometry", "serde"})

	rec := record.New()
	geomPrefix := filepath.Join(ws, "install", "geometry")
	if err := rec.Insert("geometry", geomPrefix); err != nil {
		t.Fatal(err)
	}

	task := newTask(t, ws, identify(t, dir), rec)
	if res := task.Run(); res.Err != nil {
		t.Fatalf("Run() error: %v", res.Err)
	}

	cfg := testutil.ReadFile(t, overrides.ConfigPath(dir))
	wantPath := filepath.Join(geomPrefix, "share", "geometry", "rust")
	if !strings.Contains(cfg, "geometry") || !strings.Contains(cfg, wantPath) {
		t.Errorf("config missing geometry override:\n%s", cfg)
	}
	if strings.Contains(cfg, "serde") {
		t.Errorf("serde is not locally built and must not be patched:\n%s", cfg)
	}
}

func TestRun_unbuiltDepLeftToRegistry(t *testing.T) {
	testutil.FakeCargo(t)
	ws := t.TempDir()
	dir := testutil.WriteHybridPackage(t, ws, "consumer", []string{"not_built_yet"})

	task := newTask(t, ws, identify(t, dir), record.New())
	res := task.Run()
	// The resolver leaves the dependency alone; whether the build then
	// fails is cargo's call (here the fake cargo succeeds).
	if res.Err != nil {
		t.Fatalf("Run() error: %v", res.Err)
	}
	cfg := testutil.ReadFile(t, overrides.ConfigPath(dir))
	if strings.Contains(cfg, "not_built_yet") {
		t.Errorf("unbuilt dep must not be patched:\n%s", cfg)
	}
}

func TestRun_buildFailure(t *testing.T) {
	testutil.FakeCargo(t)
	t.Setenv("FAKE_CARGO_FAIL", "doomed")
	ws := t.TempDir()
	dir := testutil.WriteHybridPackage(t, ws, "doomed", nil)

	task := newTask(t, ws, identify(t, dir), record.New())
	res := task.Run()
	if res.Err == nil {
		t.Fatal("Run() expected failure")
	}
	if res.ExitCode != 7 {
		t.Errorf("ExitCode = %d, want 7", res.ExitCode)
	}
	if res.LogPath == "" {
		t.Error("failure must reference the captured output")
	}
	// No resource index marker on failure.
	if _, err := os.Stat(MarkerPath(task.InstallPrefix, "doomed")); err == nil {
		t.Error("failed build must not register in the resource index")
	}
}

func TestRun_unparseableConfigFailsBeforeCargo(t *testing.T) {
	logPath := testutil.FakeCargo(t)
	ws := t.TempDir()
	dir := testutil.WriteHybridPackage(t, ws, "victim", nil)
	testutil.WriteFile(t, overrides.ConfigPath(dir), "[patch\nbroken")

	task := newTask(t, ws, identify(t, dir), record.New())
	res := task.Run()
	if !errors.Is(res.Err, overrides.ErrUnparseable) {
		t.Fatalf("Run() error = %v, want ErrUnparseable", res.Err)
	}
	if res.ExitCode != -1 {
		t.Errorf("ExitCode = %d, want -1 for pre-subprocess failure", res.ExitCode)
	}
	if log := testutil.ReadFile(t, logPath); log != "" {
		t.Errorf("cargo must not have been invoked: %q", log)
	}
}

func TestRun_installedPrefixDiscovery(t *testing.T) {
	testutil.FakeCargo(t)
	ws := t.TempDir()
	dir := testutil.WriteHybridPackage(t, ws, "consumer", []string{"underlay_pkg"})

	underlay := t.TempDir()
	if err := WriteIndexMarker(underlay, "underlay_pkg"); err != nil {
		t.Fatal(err)
	}

	task := newTask(t, ws, identify(t, dir), record.New())
	task.BaseEnv = append(os.Environ(), "AMENT_PREFIX_PATH="+underlay)
	if res := task.Run(); res.Err != nil {
		t.Fatalf("Run() error: %v", res.Err)
	}

	cfg := testutil.ReadFile(t, overrides.ConfigPath(dir))
	wantPath := filepath.Join(underlay, "share", "underlay_pkg", "rust")
	if !strings.Contains(cfg, wantPath) {
		t.Errorf("underlay override missing:\n%s", cfg)
	}
}
