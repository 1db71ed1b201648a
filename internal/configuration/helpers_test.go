package configuration

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/buildconf-labs/buildconf/internal/dependency"
	"github.com/buildconf-labs/buildconf/internal/listener"
	"github.com/buildconf-labs/buildconf/internal/resolution"
)

type rootPath struct{}

func (rootPath) AbsoluteName(name string) string { return ":" + name }

type staticMetadata struct{ module dependency.Module }

func (m *staticMetadata) Module() dependency.Module { return m.module }

// unavailableVersion is a version the fake resolver reports as not found.
const unavailableVersion = "9.9.9"

// fakeResolver echoes the requested module dependencies back as resolved.
type fakeResolver struct {
	mu       sync.Mutex
	requests []resolution.Request
	err      error
}

func (r *fakeResolver) Resolve(_ context.Context, req resolution.Request) (*resolution.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, req)
	if r.err != nil {
		return nil, r.err
	}
	result := &resolution.Result{ID: uuid.New(), Path: req.Path}
	for _, d := range req.Dependencies {
		node := &resolution.Node{
			Requested: d.String(),
			Module:    dependency.Module{Group: d.Group(), Name: d.Name(), Version: d.Version()},
		}
		if d.Version() == unavailableVersion {
			node.Failure = "not found"
			result.Failures = append(result.Failures, node)
		} else {
			result.Modules = append(result.Modules, node.Module)
		}
		result.Roots = append(result.Roots, node)
	}
	return result, nil
}

func (r *fakeResolver) calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.requests)
}

type recordingListener struct {
	mu     sync.Mutex
	events []string
}

func (l *recordingListener) BeforeResolve(_ context.Context, req resolution.Request) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, "before "+req.Path)
}

func (l *recordingListener) AfterResolve(_ context.Context, req resolution.Request, _ *resolution.Result, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err != nil {
		l.events = append(l.events, "failed "+req.Path)
		return
	}
	l.events = append(l.events, "after "+req.Path)
}

func testCollaborators() Collaborators {
	return Collaborators{
		Resolver:   &fakeResolver{},
		Listeners:  listener.NewManager(),
		Metadata:   &staticMetadata{module: dependency.Module{Group: "com.acme", Name: "app", Version: "1.0.0"}},
		Strategies: resolution.NewFactory(resolution.ConflictLatest),
	}
}

func newTestContainer(t *testing.T, opts ...Option) *Container {
	t.Helper()
	c, err := New(rootPath{}, testCollaborators(), opts...)
	require.NoError(t, err)
	return c
}

func mustModule(t *testing.T, notation string) *dependency.ModuleDependency {
	t.Helper()
	d, err := dependency.Parse(notation)
	require.NoError(t, err)
	md, ok := d.(*dependency.ModuleDependency)
	require.True(t, ok, "%s is not a module dependency", notation)
	return md
}
