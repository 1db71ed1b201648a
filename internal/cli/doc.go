// Package cli defines the Cobra command tree for the buildconf CLI. Each file
// in this package registers one top-level command (configurations,
// dependencies, resolve, etc.) with the root command. Command implementations
// delegate to internal packages for the build model and only handle flag
// parsing and output formatting.
package cli
