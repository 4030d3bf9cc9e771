package crate

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Load reads and parses a Cargo.toml file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is a workspace manifest path
	if err != nil {
		return nil, fmt.Errorf("reading crate manifest: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Parse parses Cargo.toml content. Manifests without a [package] name
// (e.g. virtual workspace manifests) are rejected.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing crate manifest TOML: %w", err)
	}
	if m.Package.Name == "" {
		return nil, fmt.Errorf("crate manifest: package.name is required")
	}
	return &m, nil
}
