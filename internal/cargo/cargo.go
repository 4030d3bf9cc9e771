package cargo

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// DefaultExecutable is the cargo binary resolved on PATH.
const DefaultExecutable = "cargo"

// DefaultSubcommand builds and installs a crate into an ament-style prefix.
// Provided by the cargo-ament-build plugin.
const DefaultSubcommand = "ament-build"

// IsInstalled returns true if the given cargo executable is on PATH.
func IsInstalled(exe string) bool {
	_, err := exec.LookPath(exe)
	return err == nil
}

// Version returns the cargo version string.
func Version(exe string) (string, error) {
	out, err := outputQuiet(exe, "--version")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// HasSubcommand checks whether a cargo subcommand is available by invoking
// its --help.
func HasSubcommand(exe, sub string) bool {
	err := exec.Command(exe, sub, "--help").Run() //nolint:gosec // exe comes from workspace config
	return err == nil
}

// BuildOpts configures one package build invocation.
type BuildOpts struct {
	Executable   string
	Subcommand   string
	Dir          string // package source directory, used as working directory
	ManifestPath string
	InstallBase  string
	TargetDir    string
	ExtraArgs    []string // appended verbatim after the fixed arguments
	Env          []string // full environment for the subprocess
	Output       io.Writer
}

// Args returns the full argument list for the build invocation. Extra
// arguments are appended unmodified and unreordered after the fixed ones.
func Args(opts BuildOpts) []string {
	args := []string{
		opts.Subcommand,
		"--install-base", opts.InstallBase,
		"--",
		"--manifest-path", opts.ManifestPath,
		"--target-dir", opts.TargetDir,
		"--quiet",
	}
	return append(args, opts.ExtraArgs...)
}

// Build runs the build invocation synchronously. A nonzero exit is returned
// as the underlying *exec.ExitError; use ExitCode to extract the status.
func Build(opts BuildOpts) error {
	cmd := exec.Command(opts.Executable, Args(opts)...) //nolint:gosec // argv is assembled from workspace config
	cmd.Dir = opts.Dir
	cmd.Env = opts.Env
	cmd.Stdout = opts.Output
	cmd.Stderr = opts.Output
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w", opts.Executable, opts.Subcommand, err)
	}
	return nil
}

// ExitCode returns the subprocess exit status carried by err, or -1 if err
// did not come from a subprocess exit.
func ExitCode(err error) int {
	var xerr *exec.ExitError
	if errors.As(err, &xerr) {
		return xerr.ExitCode()
	}
	return -1
}

// outputQuiet executes a cargo command and returns its stdout.
func outputQuiet(exe string, args ...string) (string, error) {
	var stdout, stderr strings.Builder
	cmd := exec.Command(exe, args...) //nolint:gosec // exe comes from workspace config
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s %s: %w: %s", exe, strings.Join(args, " "), err, stderr.String())
	}
	return stdout.String(), nil
}
