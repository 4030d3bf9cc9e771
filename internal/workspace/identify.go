package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/fbkclanna/cargows/internal/crate"
	"github.com/fbkclanna/cargows/internal/manifest"
)

// Kind classifies a package directory by the manifests it carries.
type Kind string

const (
	// KindHybrid marks packages with both package.xml (build_type
	// ament_cargo) and Cargo.toml. Only these are built by cargows.
	KindHybrid Kind = "ament_cargo"
	// KindCargo marks directories with only a Cargo.toml.
	KindCargo Kind = "cargo"
	// KindAment marks directories with only a package.xml, or with a
	// non-cargo build type.
	KindAment Kind = "ament"
)

// Package is one classified workspace package.
type Package struct {
	Name string
	Dir  string // absolute
	Kind Kind
	Deps []string // merged declared dependency names; hybrid packages only
}

// ErrNameMismatch reports a directory whose two manifests name different
// packages. Such a directory is excluded from the build set.
var ErrNameMismatch = errors.New("package.xml and Cargo.toml name different packages")

// Identify classifies one directory. It returns a hybrid Package when the
// directory carries both manifests with agreeing names and the ament_cargo
// build type. Directories with only one manifest, or with a different
// build type, return nil so that other tooling can claim them.
func Identify(dir string) (*Package, error) {
	xmlPath := filepath.Join(dir, manifest.FileName)
	if _, err := os.Stat(xmlPath); err != nil {
		return nil, nil // no primary manifest: not ours, never an error
	}

	pkg, err := manifest.Load(xmlPath)
	if err != nil {
		return nil, err
	}
	if pkg.BuildType != "" && pkg.BuildType != manifest.BuildTypeAmentCargo {
		return nil, nil
	}

	tomlPath := filepath.Join(dir, crate.FileName)
	if _, err := os.Stat(tomlPath); err != nil {
		if pkg.BuildType == manifest.BuildTypeAmentCargo {
			return nil, fmt.Errorf("%s: build_type is %s but %s is missing", dir, manifest.BuildTypeAmentCargo, crate.FileName)
		}
		return nil, nil
	}
	if pkg.BuildType == "" {
		// package.xml without an explicit ament_cargo build type is left
		// to ordinary ament identification even when a Cargo.toml exists.
		return nil, nil
	}

	cm, err := crate.Load(tomlPath)
	if err != nil {
		return nil, err
	}
	if cm.Package.Name != pkg.Name {
		return nil, fmt.Errorf("%s: %w: %q vs %q", dir, ErrNameMismatch, pkg.Name, cm.Package.Name)
	}

	return &Package{
		Name: pkg.Name,
		Dir:  dir,
		Kind: KindHybrid,
		Deps: mergeDeps(pkg.DependencyNames(), cm.DependencyNames()),
	}, nil
}

// mergeDeps returns the sorted, deduplicated union of the dependency names
// declared by the two manifests.
func mergeDeps(primary, secondary []string) []string {
	seen := make(map[string]bool, len(primary)+len(secondary))
	var names []string
	for _, group := range [][]string{primary, secondary} {
		for _, n := range group {
			if n == "" || seen[n] {
				continue
			}
			seen[n] = true
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}
