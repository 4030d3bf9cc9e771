// Package cargo provides a wrapper around the cargo CLI used by cargows.
// It handles build invocation, version and subcommand probing, without
// depending on other internal packages.
package cargo
