package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/Masterminds/semver/v3"
	gocache "github.com/patrickmn/go-cache"

	"github.com/buildconf-labs/buildconf/internal/logging"
	"github.com/buildconf-labs/buildconf/internal/manifest"
)

// DefaultTTL is how long version listings stay cached.
const DefaultTTL = 10 * time.Minute

// ErrModuleNotFound is returned when a module or module version is absent.
var ErrModuleNotFound = errors.New("module not found")

// Repository provides module metadata to a resolver.
type Repository interface {
	// Versions returns the available versions of group:name, ascending.
	Versions(ctx context.Context, group, name string) ([]*semver.Version, error)
	// Module returns the manifest of one module version.
	Module(ctx context.Context, group, name, version string) (*manifest.ModuleManifest, error)
}

// Local is a Repository backed by a directory tree.
type Local struct {
	root  string
	cache *gocache.Cache
}

// NewLocal returns a Local repository rooted at root. A non-positive ttl
// uses DefaultTTL.
func NewLocal(root string, ttl time.Duration) *Local {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Local{
		root:  root,
		cache: gocache.New(ttl, 2*ttl),
	}
}

// Root returns the repository root directory.
func (l *Local) Root() string { return l.root }

// Versions lists version directories of group:name that parse as semver
// and contain a module manifest.
func (l *Local) Versions(ctx context.Context, group, name string) ([]*semver.Version, error) {
	key := "versions:" + group + ":" + name
	if v, ok := l.cache.Get(key); ok {
		if versions, ok := v.([]*semver.Version); ok {
			logging.FromContext(ctx).Debug("Repository cache hit.", "module", group+":"+name)
			return versions, nil
		}
	}

	dir := filepath.Join(l.root, group, name)
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s:%s in %s", ErrModuleNotFound, group, name, l.root)
	}
	if err != nil {
		return nil, fmt.Errorf("reading module directory %s: %w", dir, err)
	}

	var versions []*semver.Version
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		v, err := semver.NewVersion(e.Name())
		if err != nil {
			logging.FromContext(ctx).Debug("Skipping non-version directory.", "dir", filepath.Join(dir, e.Name()))
			continue
		}
		if _, err := os.Stat(filepath.Join(dir, e.Name(), manifest.ModuleFileName)); err != nil {
			continue
		}
		versions = append(versions, v)
	}
	if len(versions) == 0 {
		return nil, fmt.Errorf("%w: no versions of %s:%s in %s", ErrModuleNotFound, group, name, l.root)
	}
	sort.Sort(semver.Collection(versions))

	l.cache.SetDefault(key, versions)
	return versions, nil
}

// Module parses the manifest of group:name:version.
func (l *Local) Module(ctx context.Context, group, name, version string) (*manifest.ModuleManifest, error) {
	key := "module:" + group + ":" + name + ":" + version
	if v, ok := l.cache.Get(key); ok {
		if m, ok := v.(*manifest.ModuleManifest); ok {
			return m, nil
		}
	}

	path := filepath.Join(l.root, group, name, version, manifest.ModuleFileName)
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s:%s:%s", ErrModuleNotFound, group, name, version)
	}

	m, err := manifest.ParseModule(path)
	if err != nil {
		return nil, err
	}
	if m.Group != group || m.Name != name {
		logging.FromContext(ctx).Warn("Module manifest coordinates differ from its location.",
			"path", path, "group", m.Group, "name", m.Name)
	}

	l.cache.SetDefault(key, m)
	return m, nil
}

// Invalidate drops all cached listings and manifests.
func (l *Local) Invalidate() {
	l.cache.Flush()
}
