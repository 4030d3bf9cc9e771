// Package manifest handles parsing of package.xml files, the primary
// manifest that names a package, declares its build type, and lists its
// dependencies by name.
package manifest
