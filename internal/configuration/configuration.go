package configuration

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/buildconf-labs/buildconf/internal/dependency"
	"github.com/buildconf-labs/buildconf/internal/resolution"
)

// State is the resolution state of a configuration.
type State int

const (
	Unresolved State = iota
	Resolved
	ResolvedWithFailures
)

func (s State) String() string {
	switch s {
	case Resolved:
		return "resolved"
	case ResolvedWithFailures:
		return "resolved with failures"
	default:
		return "unresolved"
	}
}

// Configuration is a named set of dependency declarations plus the policy
// used to resolve them.
type Configuration struct {
	path         string
	name         string
	provider     Provider
	collab       Collaborators
	dependencies *dependency.Set
	strategy     *resolution.Strategy

	mu          sync.RWMutex
	description string
	visible     bool
	transitive  bool
	extendsFrom []string
	state       State
	result      *resolution.Result
}

// NewConfiguration constructs a configuration. Every collaborator is
// required; the strategy is produced by the strategy factory.
func NewConfiguration(args Args) (*Configuration, error) {
	if strings.TrimSpace(args.Name) == "" {
		return nil, errors.New("name is required")
	}
	if args.Provider == nil {
		return nil, errors.New("configurations provider is required")
	}
	if err := args.Collaborators.validate(); err != nil {
		return nil, err
	}
	path := args.Path
	if path == "" {
		path = args.Name
	}
	return &Configuration{
		path:         path,
		name:         args.Name,
		provider:     args.Provider,
		collab:       args.Collaborators,
		dependencies: dependency.NewSet(),
		strategy:     args.Collaborators.Strategies.NewStrategy(),
		visible:      true,
		transitive:   true,
	}, nil
}

func (c *Configuration) Name() string                             { return c.name }
func (c *Configuration) Path() string                             { return c.path }
func (c *Configuration) Provider() Provider                       { return c.provider }
func (c *Configuration) Collaborators() Collaborators             { return c.collab }
func (c *Configuration) Dependencies() *dependency.Set            { return c.dependencies }
func (c *Configuration) ResolutionStrategy() *resolution.Strategy { return c.strategy }

func (c *Configuration) String() string {
	return "configuration '" + c.path + "'"
}

func (c *Configuration) Description() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.description
}

func (c *Configuration) SetDescription(d string) *Configuration {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.description = d
	return c
}

// Visible reports whether the configuration is meant for consumers outside
// its project.
func (c *Configuration) Visible() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.visible
}

func (c *Configuration) SetVisible(v bool) *Configuration {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.visible = v
	return c
}

// Transitive reports whether dependencies of dependencies are resolved.
func (c *Configuration) Transitive() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.transitive
}

func (c *Configuration) SetTransitive(t bool) *Configuration {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transitive = t
	return c
}

// ExtendsFrom adds superconfigurations by name. The names are looked up
// through the provider when the hierarchy is walked, so they may be
// declared before the configurations they refer to exist.
func (c *Configuration) ExtendsFrom(names ...string) *Configuration {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, n := range names {
		dup := false
		for _, existing := range c.extendsFrom {
			if existing == n {
				dup = true
				break
			}
		}
		if !dup {
			c.extendsFrom = append(c.extendsFrom, n)
		}
	}
	return c
}

// ExtendsFromNames returns the declared superconfiguration names.
func (c *Configuration) ExtendsFromNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, len(c.extendsFrom))
	copy(out, c.extendsFrom)
	return out
}

// Hierarchy returns this configuration followed by all configurations it
// extends, depth first, each once.
func (c *Configuration) Hierarchy() ([]*Configuration, error) {
	var out []*Configuration
	visited := make(map[*Configuration]bool)
	if err := c.collectHierarchy(&out, visited, nil); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Configuration) collectHierarchy(out *[]*Configuration, visited map[*Configuration]bool, stack []*Configuration) error {
	for _, s := range stack {
		if s == c {
			return fmt.Errorf("cyclic extendsFrom between %s and %s is not allowed", stack[len(stack)-1], c)
		}
	}
	if visited[c] {
		return nil
	}
	visited[c] = true
	*out = append(*out, c)

	stack = append(stack, c)
	for _, name := range c.ExtendsFromNames() {
		super, err := c.lookup(name)
		if err != nil {
			return fmt.Errorf("%s extends from an unknown configuration: %w", c, err)
		}
		if err := super.collectHierarchy(out, visited, stack); err != nil {
			return err
		}
	}
	return nil
}

func (c *Configuration) lookup(name string) (*Configuration, error) {
	for _, other := range c.provider.Configurations() {
		if other.Name() == name {
			return other, nil
		}
	}
	return nil, &UnknownConfigurationError{Name: name, Type: typeDisplayName}
}

// AllDependencies returns the dependencies of the whole hierarchy, own
// dependencies first. Declarations with the same notation appear once.
func (c *Configuration) AllDependencies() ([]dependency.Dependency, error) {
	hierarchy, err := c.Hierarchy()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var out []dependency.Dependency
	for _, h := range hierarchy {
		for _, d := range h.Dependencies().All() {
			key := d.String()
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, d)
		}
	}
	return out, nil
}

// State returns the resolution state.
func (c *Configuration) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Resolve resolves the configuration through the shared resolver, notifying
// the listener manager before and after. The result is kept; later calls
// return it without resolving again.
func (c *Configuration) Resolve(ctx context.Context) (*resolution.Result, error) {
	c.mu.RLock()
	if c.result != nil {
		defer c.mu.RUnlock()
		return c.result, nil
	}
	c.mu.RUnlock()

	deps, err := c.AllDependencies()
	if err != nil {
		return nil, err
	}

	req := resolution.Request{
		Path:         c.path,
		Root:         c.collab.Metadata.Module(),
		Dependencies: deps,
		Strategy:     c.strategy,
		Transitive:   c.Transitive(),
	}

	c.collab.Listeners.BeforeResolve(ctx, req)
	result, err := c.collab.Resolver.Resolve(ctx, req)
	c.collab.Listeners.AfterResolve(ctx, req, result, err)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", c, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.result == nil {
		c.result = result
		c.state = Resolved
		if result.HasFailures() {
			c.state = ResolvedWithFailures
		}
	}
	return c.result, nil
}
