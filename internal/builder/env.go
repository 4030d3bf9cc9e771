package builder

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	amentPrefixPathVar = "AMENT_PREFIX_PATH"
	ldLibraryPathVar   = "LD_LIBRARY_PATH"
)

// resourceIndexDir is where installed hybrid packages register themselves
// inside an install prefix.
var resourceIndexDir = filepath.Join("share", "ament_index", "resource_index", "rust_packages")

// Env assembles the environment for one package's build subprocess: the
// base environment, with the dependency install prefixes prepended to
// AMENT_PREFIX_PATH and their lib directories to LD_LIBRARY_PATH.
// Explicit overrides are applied last and take precedence over everything.
func Env(base []string, depPrefixes []string, envOverrides []string) []string {
	env := append([]string(nil), base...)
	if len(depPrefixes) > 0 {
		env = prependPath(env, amentPrefixPathVar, depPrefixes)
		libs := make([]string, len(depPrefixes))
		for i, p := range depPrefixes {
			libs[i] = filepath.Join(p, "lib")
		}
		env = prependPath(env, ldLibraryPathVar, libs)
	}
	for _, kv := range envOverrides {
		env = setEnv(env, kv)
	}
	return env
}

// InstalledPackages scans the prefixes on an AMENT_PREFIX_PATH value for
// registered rust packages and returns the installed crate source path for
// each. Later prefixes win for a name that appears more than once.
func InstalledPackages(amentPrefixPath string) map[string]string {
	out := make(map[string]string)
	for _, prefix := range filepath.SplitList(amentPrefixPath) {
		if prefix == "" {
			continue
		}
		entries, err := os.ReadDir(filepath.Join(prefix, resourceIndexDir))
		if err != nil {
			continue
		}
		for _, e := range entries {
			name := e.Name()
			out[name] = filepath.Join(prefix, "share", name, "rust")
		}
	}
	return out
}

// WriteIndexMarker registers a package in its install prefix's resource
// index so that later runs and underlay workspaces can discover it.
func WriteIndexMarker(prefix, name string) error {
	dir := filepath.Join(prefix, resourceIndexDir)
	if err := os.MkdirAll(dir, 0755); err != nil { //nolint:gosec // index dir needs to be readable
		return err
	}
	return os.WriteFile(filepath.Join(dir, name), nil, 0644) //nolint:gosec // marker file needs to be readable
}

// MarkerPath returns the resource index marker path for a package.
func MarkerPath(prefix, name string) string {
	return filepath.Join(prefix, resourceIndexDir, name)
}

func prependPath(env []string, key string, values []string) []string {
	joined := strings.Join(values, string(os.PathListSeparator))
	if cur, ok := lookupEnv(env, key); ok && cur != "" {
		joined = joined + string(os.PathListSeparator) + cur
	}
	return setEnv(env, key+"="+joined)
}

func lookupEnv(env []string, key string) (string, bool) {
	for i := len(env) - 1; i >= 0; i-- {
		if strings.HasPrefix(env[i], key+"=") {
			return env[i][len(key)+1:], true
		}
	}
	return "", false
}

// setEnv replaces the last entry for kv's key, or appends.
func setEnv(env []string, kv string) []string {
	key, _, ok := strings.Cut(kv, "=")
	if !ok {
		return env
	}
	for i := len(env) - 1; i >= 0; i-- {
		if strings.HasPrefix(env[i], key+"=") {
			env[i] = kv
			return env
		}
	}
	return append(env, kv)
}
