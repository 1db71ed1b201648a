package listener

import (
	"context"
	"log/slog"
	"sync"

	"github.com/buildconf-labs/buildconf/internal/resolution"
)

// Listener observes configuration resolution.
type Listener interface {
	BeforeResolve(ctx context.Context, req resolution.Request)
	AfterResolve(ctx context.Context, req resolution.Request, result *resolution.Result, err error)
}

// Manager fans events out to listeners in registration order.
type Manager struct {
	mu        sync.RWMutex
	listeners []Listener
}

// NewManager creates a Manager with the given initial listeners.
func NewManager(listeners ...Listener) *Manager {
	return &Manager{listeners: listeners}
}

// Add registers a listener.
func (m *Manager) Add(l Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, l)
}

// Len returns the number of registered listeners.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.listeners)
}

func (m *Manager) snapshot() []Listener {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Listener, len(m.listeners))
	copy(out, m.listeners)
	return out
}

// BeforeResolve notifies every listener that req is about to be resolved.
func (m *Manager) BeforeResolve(ctx context.Context, req resolution.Request) {
	for _, l := range m.snapshot() {
		l.BeforeResolve(ctx, req)
	}
}

// AfterResolve notifies every listener of the outcome of req.
func (m *Manager) AfterResolve(ctx context.Context, req resolution.Request, result *resolution.Result, err error) {
	for _, l := range m.snapshot() {
		l.AfterResolve(ctx, req, result, err)
	}
}

// LoggingListener writes resolution events to a slog.Logger.
type LoggingListener struct {
	Logger *slog.Logger
}

func (l LoggingListener) BeforeResolve(_ context.Context, req resolution.Request) {
	l.Logger.Debug("Resolving configuration.", "configuration", req.Path, "dependencies", len(req.Dependencies))
}

func (l LoggingListener) AfterResolve(_ context.Context, req resolution.Request, result *resolution.Result, err error) {
	switch {
	case err != nil:
		l.Logger.Error("Resolution failed.", "configuration", req.Path, "error", err)
	case result.HasFailures():
		l.Logger.Warn("Resolved with failures.", "configuration", req.Path, "failures", len(result.Failures))
	default:
		l.Logger.Info("Resolved configuration.", "configuration", req.Path, "modules", len(result.Modules))
	}
}
