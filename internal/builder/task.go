package builder

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fbkclanna/cargows/internal/cargo"
	"github.com/fbkclanna/cargows/internal/crate"
	"github.com/fbkclanna/cargows/internal/overrides"
	"github.com/fbkclanna/cargows/internal/record"
	"github.com/fbkclanna/cargows/internal/workspace"
)

// Task builds one hybrid package. It reads the build record to locate
// already-built dependencies but never writes to it; recording a success
// is the caller's job, keeping a single writer per record entry.
type Task struct {
	Package       *workspace.Package
	Record        *record.Record
	Executable    string
	Subcommand    string
	BuildDir      string // target dir for this package
	InstallPrefix string
	ExtraArgs     []string // passed through verbatim after the fixed args
	EnvOverrides  []string // KEY=VAL pairs, highest precedence
	LookupPaths   map[string]string
	BaseEnv       []string // defaults to os.Environ()
}

// Result reports one package build outcome. Err is nil exactly when the
// build succeeded; ExitCode carries the cargo exit status, or -1 when the
// failure happened before or outside the subprocess.
type Result struct {
	Name          string
	InstallPrefix string
	LogPath       string
	ExitCode      int
	Err           error
}

// Run resolves overrides, regenerates the cargo config, and invokes the
// build synchronously. Any failure is local to this package.
func (t *Task) Run() Result {
	res := Result{Name: t.Package.Name, InstallPrefix: t.InstallPrefix}

	var depPrefixes []string
	for _, d := range t.Package.Deps {
		if prefix, ok := t.Record.Lookup(d); ok {
			depPrefixes = append(depPrefixes, prefix)
		}
	}
	base := t.BaseEnv
	if base == nil {
		base = os.Environ()
	}
	env := Env(base, depPrefixes, t.EnvOverrides)

	// Override sources, least to most authoritative: installed prefixes,
	// workspace lookup, packages built during this run.
	apath, _ := lookupEnv(env, amentPrefixPathVar)
	recPaths := make(map[string]string)
	for name, prefix := range t.Record.Snapshot() {
		recPaths[name] = filepath.Join(prefix, "share", name, "rust")
	}
	paths := overrides.MergePaths(InstalledPackages(apath), t.LookupPaths, recPaths)

	names := overrides.Resolve(t.Package.Deps, paths)
	if err := overrides.WriteConfig(t.Package.Dir, names, paths); err != nil {
		res.ExitCode = -1
		res.Err = fmt.Errorf("configuring overrides for %s: %w", t.Package.Name, err)
		return res
	}

	if err := os.MkdirAll(t.BuildDir, 0755); err != nil { //nolint:gosec // build dir needs to be readable
		res.ExitCode = -1
		res.Err = fmt.Errorf("creating build dir for %s: %w", t.Package.Name, err)
		return res
	}
	res.LogPath = filepath.Join(t.BuildDir, "build.log")
	logFile, err := os.Create(res.LogPath)
	if err != nil {
		res.ExitCode = -1
		res.Err = fmt.Errorf("creating build log for %s: %w", t.Package.Name, err)
		return res
	}
	defer func() { _ = logFile.Close() }()

	buildErr := cargo.Build(cargo.BuildOpts{
		Executable:   t.Executable,
		Subcommand:   t.Subcommand,
		Dir:          t.Package.Dir,
		ManifestPath: filepath.Join(t.Package.Dir, crate.FileName),
		InstallBase:  t.InstallPrefix,
		TargetDir:    t.BuildDir,
		ExtraArgs:    t.ExtraArgs,
		Env:          env,
		Output:       logFile,
	})
	if buildErr != nil {
		res.ExitCode = cargo.ExitCode(buildErr)
		res.Err = fmt.Errorf("building %s: %w (see %s)", t.Package.Name, buildErr, res.LogPath)
		return res
	}

	if err := WriteIndexMarker(t.InstallPrefix, t.Package.Name); err != nil {
		res.ExitCode = -1
		res.Err = fmt.Errorf("registering %s in resource index: %w", t.Package.Name, err)
		return res
	}
	return res
}
