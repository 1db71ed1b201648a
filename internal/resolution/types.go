package resolution

import (
	"github.com/google/uuid"

	"github.com/buildconf-labs/buildconf/internal/dependency"
)

// Request is everything a resolver needs from a configuration.
type Request struct {
	Path         string // configuration path, e.g. ":app:runtime"
	Root         dependency.Module
	Dependencies []dependency.Dependency
	Strategy     *Strategy
	Transitive   bool
}

// Node is one dependency edge in the resolved graph.
type Node struct {
	Requested string // the declaration as written
	Module    dependency.Module
	Project   bool
	Deduped   bool   // module already appears earlier in the graph
	Failure   string // set when the declaration could not be resolved
	Children  []*Node
}

// Result is the outcome of resolving one Request.
type Result struct {
	ID       uuid.UUID
	Path     string
	Roots    []*Node
	Modules  []dependency.Module // dependencies first, each module once
	Failures []*Node
}

// HasFailures reports whether any declaration failed to resolve.
func (r *Result) HasFailures() bool {
	return len(r.Failures) > 0
}
