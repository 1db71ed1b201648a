// Package manifest handles parsing and validation of buildconf manifests.
// A project manifest (buildconf.yaml, buildconf.json or buildconf.hcl) declares
// a project's module identity and its configurations; a module manifest
// (module.yaml) describes one published module version inside a repository.
// YAML and JSON manifests are validated against the embedded JSON Schema.
package manifest
