package configuration

import (
	"context"
	"errors"

	"github.com/buildconf-labs/buildconf/internal/dependency"
	"github.com/buildconf-labs/buildconf/internal/resolution"
)

// Resolver turns a configuration's resolution request into a graph.
type Resolver interface {
	Resolve(ctx context.Context, req resolution.Request) (*resolution.Result, error)
}

// ListenerManager is notified around every resolution.
type ListenerManager interface {
	BeforeResolve(ctx context.Context, req resolution.Request)
	AfterResolve(ctx context.Context, req resolution.Request, result *resolution.Result, err error)
}

// MetadataProvider supplies the identity of the module being built.
type MetadataProvider interface {
	Module() dependency.Module
}

// StrategyFactory produces one resolution strategy per configuration.
type StrategyFactory interface {
	NewStrategy() *resolution.Strategy
}

// Collaborators are shared, unchanged, by every configuration a container
// creates.
type Collaborators struct {
	Resolver   Resolver
	Listeners  ListenerManager
	Metadata   MetadataProvider
	Strategies StrategyFactory
}

func (c Collaborators) validate() error {
	var errs []error
	if c.Resolver == nil {
		errs = append(errs, errors.New("resolver is required"))
	}
	if c.Listeners == nil {
		errs = append(errs, errors.New("listener manager is required"))
	}
	if c.Metadata == nil {
		errs = append(errs, errors.New("metadata provider is required"))
	}
	if c.Strategies == nil {
		errs = append(errs, errors.New("strategy factory is required"))
	}
	return errors.Join(errs...)
}

// Provider exposes a set of configurations to the configurations it holds,
// for extendsFrom lookups.
type Provider interface {
	Configurations() []*Configuration
}

// DomainContext qualifies local names within the enclosing build unit.
type DomainContext interface {
	AbsoluteName(name string) string
}

// Action configures a newly created configuration.
type Action func(*Configuration) error

// Args are the constructor arguments of a Configuration.
type Args struct {
	Path          string
	Name          string
	Provider      Provider
	Collaborators Collaborators
}

// Instantiator constructs configurations. Named configurations are built
// with the container lock held, so it must not call back into the container.
type Instantiator interface {
	NewConfiguration(args Args) (*Configuration, error)
}

// InstantiatorFunc adapts a function to Instantiator.
type InstantiatorFunc func(args Args) (*Configuration, error)

func (f InstantiatorFunc) NewConfiguration(args Args) (*Configuration, error) {
	return f(args)
}

// DefaultInstantiator builds configurations with NewConfiguration and
// reports failures as *InstantiationError.
var DefaultInstantiator Instantiator = InstantiatorFunc(func(args Args) (*Configuration, error) {
	c, err := NewConfiguration(args)
	if err != nil {
		return nil, &InstantiationError{Name: args.Name, Err: err}
	}
	return c, nil
})
