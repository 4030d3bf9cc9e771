package manifest

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"
)

// xmlPackage mirrors the package.xml format. Only the elements needed for
// identification and dependency resolution are decoded.
type xmlPackage struct {
	XMLName      xml.Name `xml:"package"`
	Name         string   `xml:"name"`
	Depends      []string `xml:"depend"`
	BuildDepends []string `xml:"build_depend"`
	RunDepends   []string `xml:"run_depend"`
	ExecDepends  []string `xml:"exec_depend"`
	TestDepends  []string `xml:"test_depend"`
	Export       struct {
		BuildType string `xml:"build_type"`
	} `xml:"export"`
}

// Load reads and parses a package.xml file.
func Load(path string) (*Package, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is a workspace manifest path
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	pkg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pkg, nil
}

// Parse parses package.xml content.
func Parse(data []byte) (*Package, error) {
	var xp xmlPackage
	if err := xml.Unmarshal(data, &xp); err != nil {
		return nil, fmt.Errorf("parsing manifest XML: %w", err)
	}

	pkg := &Package{
		Name:         strings.TrimSpace(xp.Name),
		BuildType:    strings.TrimSpace(xp.Export.BuildType),
		Depends:      trimAll(xp.Depends),
		BuildDepends: trimAll(xp.BuildDepends),
		RunDepends:   trimAll(append(xp.RunDepends, xp.ExecDepends...)),
		TestDepends:  trimAll(xp.TestDepends),
	}

	if err := validate(pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}

func validate(pkg *Package) error {
	if pkg.Name == "" {
		return fmt.Errorf("manifest: name is required")
	}
	if strings.ContainsAny(pkg.Name, " \t/\\") {
		return fmt.Errorf("manifest: invalid package name %q", pkg.Name)
	}
	return nil
}

func trimAll(ss []string) []string {
	var out []string
	for _, s := range ss {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
