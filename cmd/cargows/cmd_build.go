package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fbkclanna/cargows/internal/builder"
	"github.com/fbkclanna/cargows/internal/plan"
	"github.com/fbkclanna/cargows/internal/record"
	"github.com/fbkclanna/cargows/internal/ui"
	"github.com/fbkclanna/cargows/internal/workspace"
	"github.com/spf13/cobra"
)

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build hybrid packages in dependency order",
		RunE:  runBuild,
	}
	cmd.Flags().StringSlice("only", nil, "Build only these packages")
	cmd.Flags().StringSlice("skip", nil, "Skip these packages")
	cmd.Flags().Int("jobs", 0, "Number of parallel build workers (default from cargows.yaml)")
	cmd.Flags().String("build-base", "", "Build directory relative to the workspace root (default from cargows.yaml)")
	cmd.Flags().String("install-base", "", "Install directory relative to the workspace root (default from cargows.yaml)")
	cmd.Flags().StringArray("cargo-args", nil, "Extra arguments passed through verbatim to the cargo invocation")
	cmd.Flags().StringArray("env", nil, "Extra KEY=VAL environment for build subprocesses")
	cmd.Flags().Bool("lookup-in-workspace", false,
		"Also resolve overrides against crate sources found in the workspace. "+
			"By default, overrides point only at install prefixes. This option is "+
			"useful for setting up .cargo/config.toml for subsequent builds with cargo.")
	return cmd
}

type buildOptions struct {
	jobs         int
	cargoArgs    []string
	envOverrides []string
	lookupPaths  map[string]string
}

func runBuild(cmd *cobra.Command, _ []string) error {
	root, _ := cmd.Flags().GetString("root")
	only, _ := cmd.Flags().GetStringSlice("only")
	skip, _ := cmd.Flags().GetStringSlice("skip")
	jobs, _ := cmd.Flags().GetInt("jobs")
	cargoArgs, _ := cmd.Flags().GetStringArray("cargo-args")
	envOverrides, _ := cmd.Flags().GetStringArray("env")
	lookupInWorkspace, _ := cmd.Flags().GetBool("lookup-in-workspace")

	for _, kv := range envOverrides {
		if !strings.Contains(kv, "=") {
			return fmt.Errorf("--env %q is not of the form KEY=VAL", kv)
		}
	}

	ctx, err := workspace.Load(root)
	if err != nil {
		return err
	}
	if buildBase, _ := cmd.Flags().GetString("build-base"); buildBase != "" {
		ctx.BuildBase = filepath.Join(ctx.Root, buildBase)
	}
	if installBase, _ := cmd.Flags().GetString("install-base"); installBase != "" {
		ctx.InstallBase = filepath.Join(ctx.Root, installBase)
	}
	if jobs == 0 {
		jobs = ctx.Config.Jobs
	}
	if jobs < 1 {
		return fmt.Errorf("--jobs must be >= 1 (got %d)", jobs)
	}

	scan, err := workspace.Scan(ctx)
	if err != nil {
		return err
	}
	for _, w := range scan.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
	}

	pkgs := filterPackages(scan.Packages, only, skip, ctx)
	out := cmd.OutOrStdout()
	if len(pkgs) == 0 {
		_, _ = fmt.Fprintln(out, "No hybrid packages to build.")
		return nil
	}

	declared := make(map[string][]string, len(pkgs))
	byName := make(map[string]*workspace.Package, len(pkgs))
	for _, p := range pkgs {
		declared[p.Name] = p.Deps
		byName[p.Name] = p
	}
	pl, err := plan.New(declared)
	if err != nil {
		return err
	}

	opts := buildOptions{
		jobs:         jobs,
		cargoArgs:    cargoArgs,
		envOverrides: envOverrides,
	}
	if lookupInWorkspace {
		opts.lookupPaths = scan.LookupPaths()
	}

	progress := ui.NewProgress(cmd.ErrOrStderr(), len(pkgs))
	rec := record.New()
	if err := runParallelBuild(ctx, byName, pl, rec, opts, progress); err != nil {
		return err
	}

	succeeded, failed, skipped := pl.Counts()
	_, _ = fmt.Fprintf(out, "Build finished: %d built, %d failed, %d skipped.\n", succeeded, failed, skipped)
	if failed > 0 || skipped > 0 {
		return fmt.Errorf("build failed for %d package(s), %d skipped", failed, skipped)
	}
	return nil
}

// filterPackages applies --only / --skip and the per-package skip setting.
func filterPackages(pkgs []*workspace.Package, only, skip []string, ctx *workspace.Context) []*workspace.Package {
	onlySet := toSet(only)
	skipSet := toSet(skip)

	var result []*workspace.Package
	for _, p := range pkgs {
		if len(onlySet) > 0 && !onlySet[p.Name] {
			continue
		}
		if skipSet[p.Name] {
			continue
		}
		if pc := ctx.Config.ForPackage(p.Name); pc != nil && pc.Skip {
			continue
		}
		result = append(result, p)
	}
	return result
}

func toSet(ss []string) map[string]bool {
	m := make(map[string]bool, len(ss))
	for _, s := range ss {
		m[s] = true
	}
	return m
}

type buildOutcome struct {
	name string
	res  builder.Result
	err  error // build error or post-build hook error
}

// runParallelBuild dispatches ready packages to up to opts.jobs workers.
// Successful packages are inserted into the record before any dependent
// becomes ready; failures skip their transitive dependents.
func runParallelBuild(ctx *workspace.Context, byName map[string]*workspace.Package, pl *plan.Plan, rec *record.Record, opts buildOptions, progress *ui.Progress) error {
	results := make(chan buildOutcome)
	inFlight := 0

	for {
		for _, name := range pl.Ready() {
			if inFlight >= opts.jobs {
				break
			}
			if err := pl.Start(name); err != nil {
				return err
			}
			pkg := byName[name]
			task := &builder.Task{
				Package:       pkg,
				Record:        rec,
				Executable:    ctx.Config.Cargo,
				Subcommand:    "ament-build",
				BuildDir:      ctx.PackageBuildDir(name),
				InstallPrefix: ctx.InstallPrefix(name),
				ExtraArgs:     append(ctx.Config.EffectiveCargoArgs(name), opts.cargoArgs...),
				EnvOverrides:  opts.envOverrides,
				LookupPaths:   opts.lookupPaths,
			}
			inFlight++
			progress.Log("Building %s ...", name)
			go func(task *builder.Task) {
				res := task.Run()
				out := buildOutcome{name: task.Package.Name, res: res, err: res.Err}
				if res.Err == nil {
					out.err = runPostBuild(ctx, task.Package, progress)
				}
				results <- out
			}(task)
		}

		if inFlight == 0 {
			break
		}

		out := <-results
		inFlight--

		if out.err != nil {
			progress.Done(fmt.Sprintf("%s failed: %v", out.name, out.err))
			skipped, err := pl.Fail(out.name)
			if err != nil {
				return err
			}
			for _, s := range skipped {
				progress.Done(fmt.Sprintf("%s skipped (depends on %s)", s, out.name))
			}
			continue
		}

		if err := rec.Insert(out.name, out.res.InstallPrefix); err != nil {
			return err
		}
		if err := pl.Succeed(out.name); err != nil {
			return err
		}
		progress.Done(fmt.Sprintf("%s built @ %s", out.name, out.res.InstallPrefix))
	}
	return nil
}

// runPostBuild runs the package's post_build hooks from cargows.yaml.
func runPostBuild(ctx *workspace.Context, pkg *workspace.Package, progress *ui.Progress) error {
	pc := ctx.Config.ForPackage(pkg.Name)
	if pc == nil {
		return nil
	}
	for _, h := range pc.PostBuild {
		progress.Log("  Running post_build for %s: %s", pkg.Name, h.Name)
		if err := execHook(pkg.Dir, h, progressWriter{progress}); err != nil {
			return fmt.Errorf("post_build %q: %w", h.Name, err)
		}
	}
	return nil
}

// progressWriter adapts Progress.Log for subprocess output.
type progressWriter struct {
	p *ui.Progress
}

func (w progressWriter) Write(b []byte) (int, error) {
	w.p.Log("%s", strings.TrimRight(string(b), "\n"))
	return len(b), nil
}
