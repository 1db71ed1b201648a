package dependency

import (
	"fmt"
	"strings"
)

// Parse reads a dependency notation.
//
//	"group:name:version"  module dependency
//	"group:name"          module dependency, any version
//	":path:to:project"    project dependency
func Parse(notation string) (Dependency, error) {
	notation = strings.TrimSpace(notation)
	if notation == "" {
		return nil, fmt.Errorf("%w: empty notation", ErrInvalidDependency)
	}

	if strings.HasPrefix(notation, ":") {
		return NewProjectDependency(notation)
	}

	parts := strings.Split(notation, ":")
	switch len(parts) {
	case 2:
		return NewModuleDependency(parts[0], parts[1], "")
	case 3:
		return NewModuleDependency(parts[0], parts[1], parts[2])
	default:
		return nil, fmt.Errorf("%w: notation %q must be group:name[:version] or :project", ErrInvalidDependency, notation)
	}
}

// ParseAll parses each notation in order and stops at the first error.
func ParseAll(notations []string) ([]Dependency, error) {
	deps := make([]Dependency, 0, len(notations))
	for _, n := range notations {
		d, err := Parse(n)
		if err != nil {
			return nil, err
		}
		deps = append(deps, d)
	}
	return deps, nil
}
