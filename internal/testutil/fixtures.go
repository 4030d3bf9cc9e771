package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil { //nolint:gosec // test file
		t.Fatal(err)
	}
}

// WriteHybridPackage creates a package directory with both package.xml
// (build_type ament_cargo) and Cargo.toml declaring the given dependencies.
// Returns the package directory.
func WriteHybridPackage(t *testing.T, wsDir, name string, deps []string) string {
	t.Helper()
	dir := filepath.Join(wsDir, name)

	var xmlDeps strings.Builder
	for _, d := range deps {
		fmt.Fprintf(&xmlDeps, "  <depend>%s</depend>\n", d)
	}
	WriteFile(t, filepath.Join(dir, "package.xml"), fmt.Sprintf(`<?xml version="1.0"?>
<package format="3">
  <name>%s</name>
  <version>0.1.0</version>
%s  <export>
    <build_type>ament_cargo</build_type>
  </export>
</package>
`, name, xmlDeps.String()))

	var tomlDeps strings.Builder
	for _, d := range deps {
		fmt.Fprintf(&tomlDeps, "%s = \"*\"\n", d)
	}
	WriteFile(t, filepath.Join(dir, "Cargo.toml"), fmt.Sprintf(`[package]
name = "%s"
version = "0.1.0"
edition = "2021"

[dependencies]
%s`, name, tomlDeps.String()))

	return dir
}

// WriteCargoPackage creates a package directory with only a Cargo.toml.
func WriteCargoPackage(t *testing.T, wsDir, name string) string {
	t.Helper()
	dir := filepath.Join(wsDir, name)
	WriteFile(t, filepath.Join(dir, "Cargo.toml"), fmt.Sprintf(`[package]
name = "%s"
version = "0.1.0"
`, name))
	return dir
}

// WriteAmentPackage creates a package directory with only a package.xml
// (non-cargo build type).
func WriteAmentPackage(t *testing.T, wsDir, name string) string {
	t.Helper()
	dir := filepath.Join(wsDir, name)
	WriteFile(t, filepath.Join(dir, "package.xml"), fmt.Sprintf(`<?xml version="1.0"?>
<package format="3">
  <name>%s</name>
  <export>
    <build_type>ament_cmake</build_type>
  </export>
</package>
`, name))
	return dir
}

// FakeCargo installs a fake cargo executable at the front of PATH for the
// duration of the test. Each invocation appends its working directory and
// argv to the returned log file. Setting FAKE_CARGO_FAIL to a
// colon-separated list of package directory names makes invocations from
// those directories exit with status 7.
func FakeCargo(t *testing.T) (logPath string) {
	t.Helper()
	binDir := t.TempDir()
	logPath = filepath.Join(t.TempDir(), "cargo.log")

	script := `#!/bin/sh
echo "cwd=$PWD argv=$*" >> "$FAKE_CARGO_LOG"
base=$(basename "$PWD")
case ":$FAKE_CARGO_FAIL:" in
  *":$base:"*) exit 7 ;;
esac
exit 0
`
	exe := filepath.Join(binDir, "cargo")
	if err := os.WriteFile(exe, []byte(script), 0755); err != nil { //nolint:gosec // test executable
		t.Fatal(err)
	}

	t.Setenv("FAKE_CARGO_LOG", logPath)
	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	return logPath
}

// ReadFile returns the content of path, or an empty string if it does not exist.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path) //nolint:gosec // test file
	if err != nil {
		if os.IsNotExist(err) {
			return ""
		}
		t.Fatal(err)
	}
	return string(data)
}
