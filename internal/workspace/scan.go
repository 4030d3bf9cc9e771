package workspace

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fbkclanna/cargows/internal/crate"
	"github.com/fbkclanna/cargows/internal/manifest"
)

// IgnoreMarker stops descent into a directory tree during workspace scans.
const IgnoreMarker = "CARGOWS_IGNORE"

// Result holds the outcome of a workspace scan.
type Result struct {
	Packages []*Package // hybrid packages, sorted by name
	Others   []*Package // cargo-only and ament-only directories, sorted by name
	Warnings []string   // directories excluded due to classification errors
}

// Scan walks the workspace and classifies every package directory. The
// build and install bases, hidden directories, and trees marked with a
// CARGOWS_IGNORE file are skipped. A directory that contains any manifest
// is treated as a package root; the walk does not descend into it.
func Scan(ctx *Context) (*Result, error) {
	res := &Result{}
	seen := make(map[string]string) // hybrid name -> dir

	err := filepath.WalkDir(ctx.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if skipDir(ctx, path) {
			return filepath.SkipDir
		}

		hasXML := fileExists(filepath.Join(path, manifest.FileName))
		hasTOML := fileExists(filepath.Join(path, crate.FileName))
		if !hasXML && !hasTOML {
			return nil
		}

		pkg, cerr := classify(path, hasXML, hasTOML)
		if cerr != nil {
			res.Warnings = append(res.Warnings, cerr.Error())
			return filepath.SkipDir
		}
		if pkg == nil {
			// A manifest that is not a package (e.g. a virtual workspace
			// Cargo.toml) does not stop the descent.
			return nil
		}
		if pkg.Kind == KindHybrid {
			if prev, dup := seen[pkg.Name]; dup {
				res.Warnings = append(res.Warnings, fmt.Sprintf("duplicate package %q in %s and %s; keeping %s", pkg.Name, prev, path, prev))
				return filepath.SkipDir
			}
			seen[pkg.Name] = path
			res.Packages = append(res.Packages, pkg)
		} else {
			res.Others = append(res.Others, pkg)
		}
		return filepath.SkipDir
	})
	if err != nil {
		return nil, fmt.Errorf("scanning workspace: %w", err)
	}

	sortPackages(res.Packages)
	sortPackages(res.Others)
	return res, nil
}

// classify determines the kind of a package directory that carries at
// least one manifest.
func classify(dir string, hasXML, hasTOML bool) (*Package, error) {
	if hasXML {
		pkg, err := Identify(dir)
		if err != nil {
			return nil, err
		}
		if pkg != nil {
			return pkg, nil
		}
		xp, err := manifest.Load(filepath.Join(dir, manifest.FileName))
		if err != nil {
			return nil, err
		}
		return &Package{Name: xp.Name, Dir: dir, Kind: KindAment}, nil
	}

	cm, err := crate.Load(filepath.Join(dir, crate.FileName))
	if err != nil {
		// Cargo.toml files without a [package] name (e.g. virtual
		// workspace manifests) are not packages.
		return nil, nil //nolint:nilerr // deliberate: not a package, not a warning
	}
	return &Package{Name: cm.Package.Name, Dir: dir, Kind: KindCargo}, nil
}

// LookupPaths returns source-directory paths for every crate in the scan
// result, for configuring overrides that survive later bare cargo builds.
func (r *Result) LookupPaths() map[string]string {
	paths := make(map[string]string)
	for _, p := range r.Others {
		if p.Kind == KindCargo {
			paths[p.Name] = p.Dir
		}
	}
	for _, p := range r.Packages {
		paths[p.Name] = p.Dir
	}
	return paths
}

func skipDir(ctx *Context, path string) bool {
	if path == ctx.Root {
		return false
	}
	if path == ctx.BuildBase || path == ctx.InstallBase {
		return true
	}
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") || base == "target" {
		return true
	}
	return fileExists(filepath.Join(path, IgnoreMarker))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func sortPackages(pkgs []*Package) {
	sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].Name < pkgs[j].Name })
}
