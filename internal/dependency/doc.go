// Package dependency defines the dependency declarations held by a
// configuration: external module dependencies addressed by group, name and
// version constraint, and project dependencies addressed by project path.
// It also provides the ordered, concurrency-safe Set a configuration stores
// them in, and the notation parser used by build files and the CLI.
package dependency
