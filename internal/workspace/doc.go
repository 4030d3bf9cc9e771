// Package workspace resolves workspace paths, scans for package
// directories, and classifies them by manifest combination. Only hybrid
// packages, carrying both package.xml and Cargo.toml, are claimed for
// building; everything else is reported but left alone.
package workspace
