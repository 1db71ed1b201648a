package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/buildconf-labs/buildconf/internal/configuration"
	"github.com/buildconf-labs/buildconf/internal/dependency"
	"github.com/buildconf-labs/buildconf/internal/listener"
	"github.com/buildconf-labs/buildconf/internal/logging"
	"github.com/buildconf-labs/buildconf/internal/manifest"
	"github.com/buildconf-labs/buildconf/internal/repository"
	"github.com/buildconf-labs/buildconf/internal/resolution"
)

// ErrInvalidBuildFile is returned when a build file fails schema validation.
var ErrInvalidBuildFile = errors.New("invalid build file")

// Options configure how a project is assembled.
type Options struct {
	Path       Path
	Repository repository.Repository
	Conflict   resolution.ConflictPolicy
	Listeners  []listener.Listener
	Logger     *slog.Logger
}

// Metadata is the project's own module identity.
type Metadata struct {
	module dependency.Module
}

func (m *Metadata) Module() dependency.Module { return m.module }

// Project is one build unit and its configuration container.
type Project struct {
	dir         string
	buildFile   string
	path        Path
	description string
	metadata    *Metadata
	listeners   *listener.Manager
	container   *configuration.Container
}

// New assembles a project without a build file. The container's
// collaborators are built here and shared by every configuration.
func New(dir string, module dependency.Module, opts Options) (*Project, error) {
	if opts.Repository == nil {
		return nil, errors.New("a repository is required")
	}
	if opts.Path == "" {
		opts.Path = Root
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	listeners := listener.NewManager(listener.LoggingListener{Logger: logger})
	for _, l := range opts.Listeners {
		listeners.Add(l)
	}

	p := &Project{
		dir:       dir,
		path:      opts.Path,
		metadata:  &Metadata{module: module},
		listeners: listeners,
	}

	container, err := configuration.New(p.path, configuration.Collaborators{
		Resolver:   resolution.NewResolver(opts.Repository),
		Listeners:  listeners,
		Metadata:   p.metadata,
		Strategies: resolution.NewFactory(opts.Conflict),
	}, configuration.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	p.container = container
	return p, nil
}

// Load reads and validates the build file in dir and creates every
// configuration it declares.
func Load(ctx context.Context, dir string, opts Options) (*Project, error) {
	if opts.Logger == nil {
		opts.Logger = logging.FromContext(ctx)
	}

	buildFile, err := manifest.FindBuildFile(dir)
	if err != nil {
		return nil, err
	}

	result, err := manifest.ValidateFile(buildFile)
	if err != nil {
		return nil, fmt.Errorf("validating %s: %w", buildFile, err)
	}
	if !result.Valid {
		return nil, fmt.Errorf("%w %s:\n%s", ErrInvalidBuildFile, buildFile, result.Summary())
	}

	m, err := manifest.ParseProject(buildFile)
	if err != nil {
		return nil, err
	}

	module := dependency.Module{Group: m.Group, Name: m.Name, Version: m.Version, Status: m.Status}
	p, err := New(filepath.Dir(buildFile), module, opts)
	if err != nil {
		return nil, err
	}
	p.buildFile = buildFile
	p.description = m.Description

	if err := p.apply(m.Configurations); err != nil {
		return nil, fmt.Errorf("loading %s: %w", buildFile, err)
	}

	opts.Logger.Debug("Loaded project.", "path", p.path, "module", module.String(), "configurations", p.container.Len())
	return p, nil
}

func (p *Project) apply(blocks []manifest.ConfigurationBlock) error {
	for _, block := range blocks {
		if _, err := p.container.CreateWith(block.Name, configure(block)); err != nil {
			return err
		}
	}

	// Superconfigurations that are referenced but never declared exist empty.
	for _, block := range blocks {
		for _, name := range block.ExtendsFrom {
			if _, err := p.container.MaybeCreate(name); err != nil {
				return err
			}
		}
	}
	return nil
}

func configure(block manifest.ConfigurationBlock) configuration.Action {
	return func(cfg *configuration.Configuration) error {
		cfg.SetDescription(block.Description)
		cfg.ExtendsFrom(block.ExtendsFrom...)
		if block.Transitive != nil {
			cfg.SetTransitive(*block.Transitive)
		}
		if block.Visible != nil {
			cfg.SetVisible(*block.Visible)
		}

		deps, err := dependency.ParseAll(block.Dependencies)
		if err != nil {
			return fmt.Errorf("%s: %w", cfg, err)
		}
		for _, d := range deps {
			cfg.Dependencies().Add(d)
		}

		if block.Strategy != nil {
			strategy := cfg.ResolutionStrategy()
			if block.Strategy.Conflict != "" {
				policy, err := resolution.ParseConflictPolicy(block.Strategy.Conflict)
				if err != nil {
					return fmt.Errorf("%s: %w", cfg, err)
				}
				strategy.SetConflictPolicy(policy)
			}
			if err := strategy.Force(block.Strategy.Force...); err != nil {
				return fmt.Errorf("%s: %w", cfg, err)
			}
		}
		return nil
	}
}

func (p *Project) Dir() string                              { return p.dir }
func (p *Project) BuildFile() string                        { return p.buildFile }
func (p *Project) Path() Path                               { return p.path }
func (p *Project) Description() string                      { return p.description }
func (p *Project) Module() dependency.Module                { return p.metadata.module }
func (p *Project) Listeners() *listener.Manager             { return p.listeners }
func (p *Project) Configurations() *configuration.Container { return p.container }

// Configuration returns a configuration of this project by name.
func (p *Project) Configuration(name string) (*configuration.Configuration, error) {
	return p.container.GetByName(name)
}
