package manifest

// BaseManifest contains fields shared by all manifest types.
type BaseManifest struct {
	Type        string `yaml:"type" json:"type"`
	Group       string `yaml:"group" json:"group"`
	Name        string `yaml:"name" json:"name"`
	Version     string `yaml:"version" json:"version"`
	Status      string `yaml:"status,omitempty" json:"status,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// ProjectManifest represents a build file.
type ProjectManifest struct {
	BaseManifest   `yaml:",inline"`
	Configurations []ConfigurationBlock `yaml:"configurations,omitempty" json:"configurations,omitempty"`
}

// ConfigurationBlock declares one named configuration of a project.
type ConfigurationBlock struct {
	Name         string         `yaml:"name" json:"name"`
	Description  string         `yaml:"description,omitempty" json:"description,omitempty"`
	ExtendsFrom  []string       `yaml:"extends_from,omitempty" json:"extends_from,omitempty"`
	Transitive   *bool          `yaml:"transitive,omitempty" json:"transitive,omitempty"`
	Visible      *bool          `yaml:"visible,omitempty" json:"visible,omitempty"`
	Dependencies []string       `yaml:"dependencies,omitempty" json:"dependencies,omitempty"`
	Strategy     *StrategyBlock `yaml:"strategy,omitempty" json:"strategy,omitempty"`
}

// StrategyBlock overrides the resolution strategy of one configuration.
type StrategyBlock struct {
	Conflict string   `yaml:"conflict,omitempty" json:"conflict,omitempty"`
	Force    []string `yaml:"force,omitempty" json:"force,omitempty"`
}

// ModuleManifest describes one version of a module in a repository.
type ModuleManifest struct {
	BaseManifest `yaml:",inline"`
	Dependencies []string `yaml:"dependencies,omitempty" json:"dependencies,omitempty"`
}

// Manifest type discriminator values.
const (
	TypeProject = "project"
	TypeModule  = "module"
)

// ValidTypes contains all valid manifest type values.
var ValidTypes = []string{
	TypeProject,
	TypeModule,
}

// Conflict policy values accepted in a strategy block.
const (
	ConflictLatest = "latest"
	ConflictFail   = "fail"
)
