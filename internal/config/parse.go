package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Validate checks the workspace configuration for errors.
func Validate(f *File) error { return validate(f) }

// Save validates and writes a workspace configuration to disk.
func Save(path string, f *File) error {
	if err := validate(f); err != nil {
		return err
	}
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil { //nolint:gosec // config file needs to be readable
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Load reads and validates a cargows.yaml file, filling in defaults for
// unset fields.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is the workspace config path
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Parse parses and validates cargows.yaml content.
func Parse(data []byte) (*File, error) {
	f := Default()
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}
	if err := validate(f); err != nil {
		return nil, err
	}
	return f, nil
}

func validate(f *File) error {
	if f.Version != 1 {
		return fmt.Errorf("unsupported config version: %d (expected 1)", f.Version)
	}
	if f.Jobs < 1 {
		return fmt.Errorf("config: jobs must be >= 1 (got %d)", f.Jobs)
	}
	if f.Cargo == "" {
		return fmt.Errorf("config: cargo executable name is required")
	}
	if err := validatePath(f.BuildBase, "build_base"); err != nil {
		return err
	}
	if err := validatePath(f.InstallBase, "install_base"); err != nil {
		return err
	}
	if f.BuildBase == f.InstallBase {
		return fmt.Errorf("config: build_base and install_base must differ (both %q)", f.BuildBase)
	}

	seen := make(map[string]bool, len(f.Packages))
	for i, p := range f.Packages {
		if err := validatePackage(i, p, seen); err != nil {
			return err
		}
		seen[p.Name] = true
	}
	return nil
}

func validatePackage(i int, p Package, seen map[string]bool) error {
	if p.Name == "" {
		return fmt.Errorf("config: packages[%d].name is required", i)
	}
	if seen[p.Name] {
		return fmt.Errorf("config: duplicate package entry %q", p.Name)
	}
	for j, h := range p.PostBuild {
		if len(h.Cmd) == 0 {
			return fmt.Errorf("config: packages[%d] (%s).post_build[%d].cmd is required", i, p.Name, j)
		}
		if h.WorkDir != "" {
			label := fmt.Sprintf("packages[%d] (%s).post_build[%d].workdir", i, p.Name, j)
			if err := validatePath(h.WorkDir, label); err != nil {
				return err
			}
		}
	}
	return nil
}

// validatePath ensures a path is relative and does not escape the workspace.
func validatePath(p, label string) error {
	if p == "" {
		return fmt.Errorf("config: %s is required", label)
	}
	if filepath.IsAbs(p) {
		return fmt.Errorf("config: %s: absolute path is not allowed: %s", label, p)
	}
	cleaned := filepath.Clean(p)
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return fmt.Errorf("config: %s: path must not escape workspace (contains ..): %s", label, p)
	}
	return nil
}
