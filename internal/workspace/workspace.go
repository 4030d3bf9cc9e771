package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fbkclanna/cargows/internal/config"
)

// Context holds the resolved paths and loaded configuration for a workspace.
type Context struct {
	Root        string
	ConfigPath  string
	Config      *config.File
	BuildBase   string // absolute
	InstallBase string // absolute
}

// Load resolves workspace paths and loads cargows.yaml if present. A
// workspace without a configuration file gets the defaults.
func Load(root string) (*Context, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving workspace root: %w", err)
	}

	configPath := filepath.Join(root, config.FileName)
	cfg := config.Default()
	if _, statErr := os.Stat(configPath); statErr == nil {
		cfg, err = config.Load(configPath)
		if err != nil {
			return nil, err
		}
	}

	return &Context{
		Root:        root,
		ConfigPath:  configPath,
		Config:      cfg,
		BuildBase:   filepath.Join(root, cfg.BuildBase),
		InstallBase: filepath.Join(root, cfg.InstallBase),
	}, nil
}

// InstallPrefix returns the isolated install prefix for a package.
func (c *Context) InstallPrefix(name string) string {
	return filepath.Join(c.InstallBase, name)
}

// PackageBuildDir returns the build (target) directory for a package.
func (c *Context) PackageBuildDir(name string) string {
	return filepath.Join(c.BuildBase, name)
}
