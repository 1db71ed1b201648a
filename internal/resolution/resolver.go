package resolution

import (
	"context"
	"fmt"
	"sort"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/buildconf-labs/buildconf/internal/dependency"
	"github.com/buildconf-labs/buildconf/internal/logging"
	"github.com/buildconf-labs/buildconf/internal/repository"
)

const tracerName = "github.com/buildconf-labs/buildconf/internal/resolution"

// maxPasses bounds conflict re-resolution. Each pass can only raise a
// selected version, so real graphs settle in two or three.
const maxPasses = 16

// Resolver resolves requests against a repository.
type Resolver struct {
	repo   repository.Repository
	tracer trace.Tracer
}

// NewResolver returns a Resolver reading from repo and tracing through the
// global OpenTelemetry provider.
func NewResolver(repo repository.Repository) *Resolver {
	return &Resolver{repo: repo, tracer: otel.Tracer(tracerName)}
}

// Resolve builds the dependency graph for req.
//
// Declarations that cannot be resolved are recorded in Result.Failures and
// do not abort the walk. A version conflict under ConflictFail does.
func (r *Resolver) Resolve(ctx context.Context, req Request) (*Result, error) {
	ctx, span := r.tracer.Start(ctx, "resolve "+req.Path, trace.WithAttributes(
		attribute.String("buildconf.configuration", req.Path),
		attribute.Int("buildconf.dependencies", len(req.Dependencies)),
	))
	defer span.End()

	logger := logging.FromContext(ctx)
	strategy := req.Strategy
	if strategy == nil {
		strategy = NewFactory(ConflictLatest).NewStrategy()
	}

	selected := make(map[string]*semver.Version)
	for pass := 0; pass < maxPasses; pass++ {
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}

		w := &walker{
			ctx:        ctx,
			repo:       r.repo,
			req:        req,
			strategy:   strategy,
			selected:   selected,
			candidates: make(map[string][]*semver.Version),
			seen:       make(map[string]bool),
		}
		roots := w.walkAll(req.Dependencies, nil, req.Transitive)

		changed, err := settleConflicts(req.Path, strategy, w.candidates, selected)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		if changed {
			logger.Debug("Re-resolving after version conflict.", "configuration", req.Path, "pass", pass+1)
			continue
		}

		result := &Result{
			ID:       uuid.New(),
			Path:     req.Path,
			Roots:    roots,
			Modules:  Flatten(roots),
			Failures: w.failures,
		}
		span.SetAttributes(
			attribute.Int("buildconf.modules", len(result.Modules)),
			attribute.Int("buildconf.failures", len(result.Failures)),
		)
		logger.Debug("Resolved configuration.", "configuration", req.Path, "id", result.ID, "modules", len(result.Modules))
		return result, nil
	}

	err := fmt.Errorf("resolving %s: version selection did not settle after %d passes", req.Path, maxPasses)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return nil, err
}

// settleConflicts applies the conflict policy to every module requested at
// more than one version and reports whether any selection changed.
func settleConflicts(path string, strategy *Strategy, candidates map[string][]*semver.Version, selected map[string]*semver.Version) (bool, error) {
	keys := make([]string, 0, len(candidates))
	for k := range candidates {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	changed := false
	for _, key := range keys {
		distinct := distinctVersions(candidates[key])
		if len(distinct) < 2 {
			continue
		}
		if strategy.ConflictPolicy() == ConflictFail {
			versions := make([]string, len(distinct))
			for i, v := range distinct {
				versions[i] = v.Original()
			}
			return false, &VersionConflictError{Path: path, Module: key, Versions: versions}
		}
		highest := distinct[len(distinct)-1]
		if cur, ok := selected[key]; !ok || !cur.Equal(highest) {
			selected[key] = highest
			changed = true
		}
	}
	return changed, nil
}

func distinctVersions(vs []*semver.Version) []*semver.Version {
	var out []*semver.Version
	for _, v := range vs {
		dup := false
		for _, o := range out {
			if o.Equal(v) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, v)
		}
	}
	sort.Sort(semver.Collection(out))
	return out
}

type walker struct {
	ctx        context.Context
	repo       repository.Repository
	req        Request
	strategy   *Strategy
	selected   map[string]*semver.Version
	candidates map[string][]*semver.Version
	seen       map[string]bool
	failures   []*Node
}

func (w *walker) walkAll(deps []dependency.Dependency, excludes []dependency.Exclude, transitive bool) []*Node {
	var nodes []*Node
	for _, d := range deps {
		if n := w.walk(d, excludes, transitive); n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

func (w *walker) walk(d dependency.Dependency, excludes []dependency.Exclude, transitive bool) *Node {
	node := &Node{Requested: d.String()}

	switch dep := d.(type) {
	case *dependency.ProjectDependency:
		node.Project = true
		node.Module = dependency.Module{
			Group:   w.req.Root.Group,
			Name:    dep.Name(),
			Version: w.req.Root.Version,
		}
		if w.seen[dep.Key()] {
			node.Deduped = true
		}
		w.seen[dep.Key()] = true
		return node

	case *dependency.ModuleDependency:
		for _, ex := range excludes {
			if ex.Matches(dep.Group(), dep.Name()) {
				return nil
			}
		}

		version, err := w.selectVersion(dep)
		if err != nil {
			node.Module = dependency.Module{Group: dep.Group(), Name: dep.Name(), Version: dep.Version()}
			node.Failure = err.Error()
			w.failures = append(w.failures, node)
			return node
		}
		key := dep.Key()
		w.candidates[key] = append(w.candidates[key], version)
		node.Module = dependency.Module{Group: dep.Group(), Name: dep.Name(), Version: version.Original()}

		if w.seen[key] {
			node.Deduped = true
			return node
		}
		w.seen[key] = true

		if !transitive || !dep.Transitive() {
			return node
		}

		m, err := w.repo.Module(w.ctx, dep.Group(), dep.Name(), version.Original())
		if err != nil {
			node.Failure = err.Error()
			w.failures = append(w.failures, node)
			return node
		}
		node.Module.Status = m.Status

		children, err := dependency.ParseAll(m.Dependencies)
		if err != nil {
			node.Failure = fmt.Sprintf("reading dependencies of %s: %v", node.Module, err)
			w.failures = append(w.failures, node)
			return node
		}
		childExcludes := append(append([]dependency.Exclude(nil), excludes...), dep.Excludes...)
		node.Children = w.walkAll(children, childExcludes, true)
		return node

	default:
		node.Failure = fmt.Sprintf("unsupported dependency type %T", d)
		w.failures = append(w.failures, node)
		return node
	}
}

// selectVersion applies, in order: a version already settled by conflict
// resolution, a forced version, then the highest version matching the
// declared constraint.
func (w *walker) selectVersion(dep *dependency.ModuleDependency) (*semver.Version, error) {
	if v, ok := w.selected[dep.Key()]; ok {
		return v, nil
	}
	if forced, ok := w.strategy.ForcedVersion(dep.Group(), dep.Name()); ok {
		return semver.NewVersion(forced)
	}
	if dep.Force {
		if v, err := semver.NewVersion(dep.Version()); err == nil {
			return v, nil
		}
	}

	constraint, err := dep.Constraint()
	if err != nil {
		return nil, err
	}
	versions, err := w.repo.Versions(w.ctx, dep.Group(), dep.Name())
	if err != nil {
		return nil, err
	}
	for i := len(versions) - 1; i >= 0; i-- {
		if constraint.Check(versions[i]) {
			return versions[i], nil
		}
	}
	return nil, fmt.Errorf("no version of %s matches %q", dep.Key(), dep.Version())
}

// Flatten returns the resolved modules in dependency order (dependencies
// before dependents), each module once. Deduped and failed nodes are skipped.
func Flatten(roots []*Node) []dependency.Module {
	seen := make(map[string]bool)
	var result []dependency.Module
	for _, root := range roots {
		flattenRecursive(root, seen, &result)
	}
	return result
}

func flattenRecursive(node *Node, seen map[string]bool, result *[]dependency.Module) {
	key := node.Module.Group + ":" + node.Module.Name
	if node.Deduped || node.Failure != "" || seen[key] {
		return
	}
	for _, child := range node.Children {
		flattenRecursive(child, seen, result)
	}
	if !seen[key] {
		seen[key] = true
		*result = append(*result, node.Module)
	}
}
