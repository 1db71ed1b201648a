package dependency

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ErrInvalidDependency is returned when a declaration is missing required
// coordinates or carries a version constraint that does not parse.
var ErrInvalidDependency = errors.New("invalid dependency")

// Dependency is a single dependency declaration.
type Dependency interface {
	Group() string
	Name() string
	Version() string

	// Key identifies the declaration by coordinates, ignoring the version.
	Key() string

	// Copy returns a deep copy that shares no mutable state with the receiver.
	Copy() (Dependency, error)

	String() string
}

// Exclude removes a transitive module from the graph below a dependency.
// An empty Name excludes the whole group.
type Exclude struct {
	Group string `yaml:"group" json:"group"`
	Name  string `yaml:"name,omitempty" json:"name,omitempty"`
}

// Matches reports whether the exclude rule applies to group:name.
func (e Exclude) Matches(group, name string) bool {
	if e.Group != group {
		return false
	}
	return e.Name == "" || e.Name == name
}

// ModuleDependency is a dependency on an external module.
type ModuleDependency struct {
	ModuleGroup   string
	ModuleName    string
	VersionSpec   string // semver constraint, e.g. "1.2.3", "^1.2", ">=2.0 <3.0"
	NonTransitive bool
	Force         bool
	Excludes      []Exclude
}

// NewModuleDependency returns a validated module dependency.
func NewModuleDependency(group, name, version string) (*ModuleDependency, error) {
	d := &ModuleDependency{ModuleGroup: group, ModuleName: name, VersionSpec: version}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *ModuleDependency) Group() string   { return d.ModuleGroup }
func (d *ModuleDependency) Name() string    { return d.ModuleName }
func (d *ModuleDependency) Version() string { return d.VersionSpec }
func (d *ModuleDependency) Key() string     { return d.ModuleGroup + ":" + d.ModuleName }

// Transitive reports whether the module's own dependencies are followed.
func (d *ModuleDependency) Transitive() bool { return !d.NonTransitive }

// Exclude adds an exclude rule and returns the dependency for chaining.
func (d *ModuleDependency) Exclude(group, name string) *ModuleDependency {
	d.Excludes = append(d.Excludes, Exclude{Group: group, Name: name})
	return d
}

// Constraint parses the version spec. An empty spec matches any version.
func (d *ModuleDependency) Constraint() (*semver.Constraints, error) {
	spec := d.VersionSpec
	if spec == "" || spec == "+" || spec == "latest" {
		spec = "*"
	}
	c, err := semver.NewConstraint(spec)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: version %q: %v", ErrInvalidDependency, d.Key(), d.VersionSpec, err)
	}
	return c, nil
}

// Validate checks the coordinates and the version constraint.
func (d *ModuleDependency) Validate() error {
	if d == nil {
		return fmt.Errorf("%w: nil module dependency", ErrInvalidDependency)
	}
	if strings.TrimSpace(d.ModuleGroup) == "" {
		return fmt.Errorf("%w: group is required for module %q", ErrInvalidDependency, d.ModuleName)
	}
	if strings.TrimSpace(d.ModuleName) == "" {
		return fmt.Errorf("%w: name is required in group %q", ErrInvalidDependency, d.ModuleGroup)
	}
	_, err := d.Constraint()
	return err
}

// Copy validates the dependency and returns a deep copy of it.
func (d *ModuleDependency) Copy() (Dependency, error) {
	if d == nil {
		return nil, fmt.Errorf("copying module dependency: %w", d.Validate())
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("copying %s: %w", d, err)
	}
	c := *d
	if d.Excludes != nil {
		c.Excludes = make([]Exclude, len(d.Excludes))
		copy(c.Excludes, d.Excludes)
	}
	return &c, nil
}

func (d *ModuleDependency) String() string {
	if d.VersionSpec == "" {
		return d.Key()
	}
	return d.Key() + ":" + d.VersionSpec
}

// ProjectDependency is a dependency on another project of the same build,
// addressed by its absolute path (":lib", ":services:api").
type ProjectDependency struct {
	ProjectPath   string
	Configuration string // target configuration; empty means the default
}

// NewProjectDependency returns a validated project dependency.
func NewProjectDependency(path string) (*ProjectDependency, error) {
	d := &ProjectDependency{ProjectPath: path}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *ProjectDependency) Group() string   { return "" }
func (d *ProjectDependency) Version() string { return "" }
func (d *ProjectDependency) Key() string     { return d.ProjectPath }

// Name returns the last segment of the project path.
func (d *ProjectDependency) Name() string {
	i := strings.LastIndex(d.ProjectPath, ":")
	return d.ProjectPath[i+1:]
}

// Validate checks that the path is absolute.
func (d *ProjectDependency) Validate() error {
	if d == nil {
		return fmt.Errorf("%w: nil project dependency", ErrInvalidDependency)
	}
	if !strings.HasPrefix(d.ProjectPath, ":") || d.ProjectPath == ":" {
		return fmt.Errorf("%w: project path %q must be absolute, e.g. \":lib\"", ErrInvalidDependency, d.ProjectPath)
	}
	return nil
}

// Copy validates the dependency and returns a copy of it.
func (d *ProjectDependency) Copy() (Dependency, error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("copying project dependency: %w", err)
	}
	c := *d
	return &c, nil
}

func (d *ProjectDependency) String() string {
	if d.Configuration != "" {
		return "project '" + d.ProjectPath + "' (" + d.Configuration + ")"
	}
	return "project '" + d.ProjectPath + "'"
}

// Module identifies the module a project publishes.
type Module struct {
	Group   string `yaml:"group" json:"group"`
	Name    string `yaml:"name" json:"name"`
	Version string `yaml:"version" json:"version"`
	Status  string `yaml:"status,omitempty" json:"status,omitempty"`
}

func (m Module) String() string {
	return m.Group + ":" + m.Name + ":" + m.Version
}
