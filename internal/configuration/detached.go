package configuration

import (
	"fmt"
	"sync"

	"github.com/buildconf-labs/buildconf/internal/dependency"
)

// DetachedNamePrefix prefixes the generated names of detached configurations.
const DetachedNamePrefix = "detachedConfiguration"

// detachedProvider holds exactly one configuration once bound.
type detachedProvider struct {
	once sync.Once
	only *Configuration
}

func (p *detachedProvider) bind(cfg *Configuration) {
	bound := false
	p.once.Do(func() {
		p.only = cfg
		bound = true
	})
	if !bound {
		panic("configuration: detached provider is already bound")
	}
}

func (p *detachedProvider) Configurations() []*Configuration {
	if p.only == nil {
		return nil
	}
	return []*Configuration{p.only}
}

// Detached creates a configuration outside the container's namespace,
// seeded with copies of deps in order. It is named detachedConfigurationN
// from a per-container counter that never goes back, even when creation
// fails. The container keeps no reference to it.
func (c *Container) Detached(deps ...dependency.Dependency) (*Configuration, error) {
	provider := &detachedProvider{}

	c.mu.Lock()
	name := fmt.Sprintf("%s%d", DetachedNamePrefix, c.detachedCounter)
	c.detachedCounter++
	c.mu.Unlock()

	cfg, err := c.instantiate(Args{
		Path:          name,
		Name:          name,
		Provider:      provider,
		Collaborators: c.collab,
	})
	if err != nil {
		return nil, err
	}

	set := cfg.Dependencies()
	for i, d := range deps {
		if d == nil {
			return nil, fmt.Errorf("creating %s: %w: nil dependency at position %d", name, dependency.ErrInvalidDependency, i)
		}
		cp, err := d.Copy()
		if err != nil {
			return nil, fmt.Errorf("creating %s: %w", name, err)
		}
		set.Add(cp)
	}

	provider.bind(cfg)
	c.logger.Debug("Created detached configuration.", "name", name, "dependencies", len(deps))
	return cfg, nil
}
