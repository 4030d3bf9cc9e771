package workspace

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/fbkclanna/cargows/internal/testutil"
)

func TestIdentify_hybrid(t *testing.T) {
	ws := t.TempDir()
	dir := testutil.WriteHybridPackage(t, ws, "nav_core", []string{"geometry", "serde"})

	pkg, err := Identify(dir)
	if err != nil {
		t.Fatalf("Identify() error: %v", err)
	}
	if pkg == nil {
		t.Fatal("Identify() = nil for hybrid package")
	}
	if pkg.Name != "nav_core" || pkg.Kind != KindHybrid {
		t.Errorf("got %q/%s, want nav_core/%s", pkg.Name, pkg.Kind, KindHybrid)
	}
	if !reflect.DeepEqual(pkg.Deps, []string{"geometry", "serde"}) {
		t.Errorf("Deps = %v", pkg.Deps)
	}
}

func TestIdentify_cargoOnly(t *testing.T) {
	ws := t.TempDir()
	dir := testutil.WriteCargoPackage(t, ws, "plain_crate")

	pkg, err := Identify(dir)
	if err != nil {
		t.Fatalf("Identify() error: %v", err)
	}
	if pkg != nil {
		t.Errorf("Identify() = %+v, want nil for Cargo.toml-only directory", pkg)
	}
}

func TestIdentify_amentOnly(t *testing.T) {
	ws := t.TempDir()
	dir := testutil.WriteAmentPackage(t, ws, "cpp_pkg")

	pkg, err := Identify(dir)
	if err != nil {
		t.Fatalf("Identify() error: %v", err)
	}
	if pkg != nil {
		t.Errorf("Identify() = %+v, want nil for package.xml-only directory", pkg)
	}
}

func TestIdentify_nameMismatch(t *testing.T) {
	ws := t.TempDir()
	dir := testutil.WriteHybridPackage(t, ws, "alpha", nil)
	testutil.WriteFile(t, filepath.Join(dir, "Cargo.toml"), "[package]\nname = \"beta\"\nversion = \"0.1.0\"\n")

	_, err := Identify(dir)
	if !errors.Is(err, ErrNameMismatch) {
		t.Errorf("Identify() error = %v, want ErrNameMismatch", err)
	}
}

func TestIdentify_amentCargoWithoutCargoToml(t *testing.T) {
	ws := t.TempDir()
	dir := filepath.Join(ws, "broken")
	testutil.WriteFile(t, filepath.Join(dir, "package.xml"), `<?xml version="1.0"?>
<package format="3">
  <name>broken</name>
  <export><build_type>ament_cargo</build_type></export>
</package>
`)

	if _, err := Identify(dir); err == nil {
		t.Error("Identify() expected error for ament_cargo without Cargo.toml")
	}
}

func TestIdentify_mergesBothManifests(t *testing.T) {
	ws := t.TempDir()
	dir := testutil.WriteHybridPackage(t, ws, "merger", []string{"xml_dep"})
	testutil.WriteFile(t, filepath.Join(dir, "Cargo.toml"), `[package]
name = "merger"
version = "0.1.0"

[dependencies]
toml_dep = "1"
xml_dep = "1"
`)

	pkg, err := Identify(dir)
	if err != nil {
		t.Fatalf("Identify() error: %v", err)
	}
	want := []string{"toml_dep", "xml_dep"}
	if !reflect.DeepEqual(pkg.Deps, want) {
		t.Errorf("Deps = %v, want %v", pkg.Deps, want)
	}
}
