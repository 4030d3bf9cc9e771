package overrides

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// ErrUnparseable reports an existing .cargo/config.toml that could not be
// parsed. It is distinct from a missing file: silently rewriting content the
// user authored would destroy it, so the build step must fail instead.
var ErrUnparseable = errors.New("existing cargo config is not valid TOML")

const (
	configDirName  = ".cargo"
	configFileName = "config.toml"
)

// ConfigPath returns the cargo config path for a package source directory.
func ConfigPath(pkgDir string) string {
	return filepath.Join(pkgDir, configDirName, configFileName)
}

// WriteConfig writes [patch.crates-io] path entries for the given names
// into the package's .cargo/config.toml. Entries for overridden names are
// replaced; every other entry in the file, including patch entries for
// other names, is preserved. Writing is idempotent: unchanged inputs
// produce identical bytes.
func WriteConfig(pkgDir string, names []string, paths map[string]string) error {
	cfgPath := ConfigPath(pkgDir)

	doc := make(map[string]any)
	data, err := os.ReadFile(cfgPath) //nolint:gosec // path is derived from the package dir
	switch {
	case err == nil:
		if uerr := toml.Unmarshal(data, &doc); uerr != nil {
			return fmt.Errorf("%w: %s: %v", ErrUnparseable, cfgPath, uerr)
		}
	case errors.Is(err, fs.ErrNotExist):
		// First write for this package.
	default:
		return fmt.Errorf("reading %s: %w", cfgPath, err)
	}

	patch, err := subTable(doc, "patch")
	if err != nil {
		return fmt.Errorf("%s: %w", cfgPath, err)
	}
	crates, err := subTable(patch, "crates-io")
	if err != nil {
		return fmt.Errorf("%s: patch: %w", cfgPath, err)
	}

	for _, name := range names {
		p, ok := paths[name]
		if !ok {
			return fmt.Errorf("no local path known for dependency %q", name)
		}
		crates[name] = map[string]any{"path": p}
	}

	out, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling cargo config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfgPath), 0755); err != nil { //nolint:gosec // config dir needs to be readable
		return fmt.Errorf("creating %s: %w", filepath.Dir(cfgPath), err)
	}
	if err := os.WriteFile(cfgPath, out, 0644); err != nil { //nolint:gosec // config file needs to be readable
		return fmt.Errorf("writing %s: %w", cfgPath, err)
	}
	return nil
}

// subTable returns doc[key] as a table, creating it if absent. A non-table
// value under the key means the user's config has a shape this tool cannot
// merge with, which is treated like unparseable content.
func subTable(doc map[string]any, key string) (map[string]any, error) {
	v, ok := doc[key]
	if !ok {
		t := make(map[string]any)
		doc[key] = t
		return t, nil
	}
	t, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a table", ErrUnparseable, key)
	}
	return t, nil
}
