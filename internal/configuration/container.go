package configuration

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

const typeDisplayName = "configuration"

// Container is the registry of named configurations of one build unit.
// It is safe for concurrent use.
type Container struct {
	context      DomainContext
	collab       Collaborators
	instantiator Instantiator
	logger       *slog.Logger

	mu              sync.Mutex
	entries         map[string]*Configuration
	order           []string
	detachedCounter int
}

// Option customizes a Container.
type Option func(*Container)

// WithInstantiator replaces DefaultInstantiator.
func WithInstantiator(i Instantiator) Option {
	return func(c *Container) { c.instantiator = i }
}

// WithLogger sets the logger used for creation events.
func WithLogger(l *slog.Logger) Option {
	return func(c *Container) { c.logger = l }
}

// New creates an empty container. Names of created configurations are
// qualified through ctx; collab is injected into every configuration.
func New(ctx DomainContext, collab Collaborators, opts ...Option) (*Container, error) {
	if ctx == nil {
		return nil, fmt.Errorf("creating %s container: domain context is required", typeDisplayName)
	}
	if err := collab.validate(); err != nil {
		return nil, fmt.Errorf("creating %s container: %w", typeDisplayName, err)
	}
	c := &Container{
		context:         ctx,
		collab:          collab,
		instantiator:    DefaultInstantiator,
		logger:          slog.Default(),
		entries:         make(map[string]*Configuration),
		detachedCounter: 1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// TypeDisplayName is the label used in messages and Dump.
func (c *Container) TypeDisplayName() string {
	return typeDisplayName
}

// Create adds a new configuration. It fails with *DuplicateNameError if
// the name is taken; on any failure the container is left unchanged.
func (c *Container) Create(name string) (*Configuration, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[name]; exists {
		return nil, &DuplicateNameError{Name: name}
	}
	return c.createLocked(name)
}

// CreateWith creates a configuration and then applies action to it. An
// error from action is returned as is; the configuration stays registered.
func (c *Container) CreateWith(name string, action Action) (*Configuration, error) {
	cfg, err := c.Create(name)
	if err != nil {
		return nil, err
	}
	if action != nil {
		if err := action(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// MaybeCreate returns the named configuration, creating it if absent.
func (c *Container) MaybeCreate(name string) (*Configuration, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cfg, ok := c.entries[name]; ok {
		return cfg, nil
	}
	return c.createLocked(name)
}

func (c *Container) createLocked(name string) (*Configuration, error) {
	cfg, err := c.instantiate(Args{
		Path:          c.context.AbsoluteName(name),
		Name:          name,
		Provider:      c,
		Collaborators: c.collab,
	})
	if err != nil {
		return nil, err
	}

	c.entries[name] = cfg
	c.order = append(c.order, name)
	c.logger.Debug("Created configuration.", "name", name, "path", cfg.Path())
	return cfg, nil
}

// instantiate runs the instantiator and rejects a nil configuration.
func (c *Container) instantiate(args Args) (*Configuration, error) {
	cfg, err := c.instantiator.NewConfiguration(args)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, &InstantiationError{Name: args.Name, Err: errNoConfiguration}
	}
	return cfg, nil
}

// GetByName returns the named configuration or *UnknownConfigurationError.
func (c *Container) GetByName(name string) (*Configuration, error) {
	if cfg, ok := c.FindByName(name); ok {
		return cfg, nil
	}
	return nil, &UnknownConfigurationError{Name: name, Type: typeDisplayName}
}

// FindByName returns the named configuration if present.
func (c *Container) FindByName(name string) (*Configuration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cfg, ok := c.entries[name]
	return cfg, ok
}

// All returns a live view of the named configurations.
func (c *Container) All() *View {
	return &View{c: c}
}

// Configurations returns the named configurations in creation order.
func (c *Container) Configurations() []*Configuration {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Configuration, len(c.order))
	for i, name := range c.order {
		out[i] = c.entries[name]
	}
	return out
}

// Names returns the configuration names in creation order.
func (c *Container) Names() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Len returns the number of named configurations.
func (c *Container) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.order)
}

// Dump renders the container for diagnostics: a header line, then one
// indented line per configuration in creation order.
func (c *Container) Dump() string {
	var b strings.Builder
	b.WriteString("Configuration of type: " + c.TypeDisplayName())
	for _, cfg := range c.Configurations() {
		b.WriteString("\n  " + cfg.String())
	}
	return b.String()
}
