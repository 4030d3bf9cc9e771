package config

// FileName is the workspace configuration file looked up in the workspace root.
const FileName = "cargows.yaml"

// File represents the top-level cargows.yaml workspace configuration.
type File struct {
	Version     int       `yaml:"version"`
	Name        string    `yaml:"name,omitempty"`
	BuildBase   string    `yaml:"build_base,omitempty"`
	InstallBase string    `yaml:"install_base,omitempty"`
	Jobs        int       `yaml:"jobs,omitempty"`
	Cargo       string    `yaml:"cargo,omitempty"`
	CargoArgs   []string  `yaml:"cargo_args,omitempty"`
	Packages    []Package `yaml:"packages,omitempty"`
}

// Package holds per-package settings overriding the workspace defaults.
type Package struct {
	Name      string   `yaml:"name"`
	Skip      bool     `yaml:"skip,omitempty"`
	CargoArgs []string `yaml:"cargo_args,omitempty"`
	PostBuild []Hook   `yaml:"post_build,omitempty"`
}

// Hook defines a command to run after a package builds successfully.
type Hook struct {
	Name    string   `yaml:"name,omitempty"`
	WorkDir string   `yaml:"workdir,omitempty"`
	Cmd     []string `yaml:"cmd"`
}

// Default returns a configuration with all defaults applied.
func Default() *File {
	return &File{
		Version:     1,
		BuildBase:   "build",
		InstallBase: "install",
		Jobs:        4,
		Cargo:       "cargo",
	}
}

// ForPackage returns the per-package settings for name, or nil.
func (f *File) ForPackage(name string) *Package {
	for i := range f.Packages {
		if f.Packages[i].Name == name {
			return &f.Packages[i]
		}
	}
	return nil
}

// EffectiveCargoArgs returns the cargo arguments for a package: workspace
// defaults first, then per-package arguments.
func (f *File) EffectiveCargoArgs(name string) []string {
	args := append([]string(nil), f.CargoArgs...)
	if pc := f.ForPackage(name); pc != nil {
		args = append(args, pc.CargoArgs...)
	}
	return args
}
