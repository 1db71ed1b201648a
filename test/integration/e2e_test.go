//go:build integration

package integration_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/buildconf-labs/buildconf/internal/config"
	"github.com/buildconf-labs/buildconf/internal/configuration"
	"github.com/buildconf-labs/buildconf/internal/dependency"
	"github.com/buildconf-labs/buildconf/internal/logging"
	"github.com/buildconf-labs/buildconf/internal/project"
	"github.com/buildconf-labs/buildconf/internal/repository"
	"github.com/buildconf-labs/buildconf/internal/resolution"
)

const appBuildFile = `type: project
group: com.acme
name: app
version: 3.0.0
configurations:
  - name: api
    dependencies:
      - com.acme:http:1.0.0
  - name: implementation
    extends_from: [api]
    dependencies:
      - com.acme:web:2.0.0
      - ":lib"
  - name: runtimeClasspath
    extends_from: [implementation, runtimeOnly]
  - name: strict
    extends_from: [implementation]
    strategy:
      conflict: fail
`

const libBuildFile = `type: project
group: com.acme
name: lib
version: 3.0.0
configurations:
  - name: api
    dependencies:
      - org.log:logging:1.1.0
`

func loadOptions(t *testing.T, path project.Path) project.Options {
	t.Helper()
	config.Load()
	settings, err := config.Current()
	if err != nil {
		t.Fatalf("config.Current: %v", err)
	}
	return project.Options{
		Path:       path,
		Repository: repository.NewLocal(settings.RepositoryPath, settings.CacheTTL),
		Logger:     logging.Discard(),
	}
}

func moduleStrings(mods []dependency.Module) []string {
	out := make([]string, len(mods))
	for i, m := range mods {
		out[i] = m.String()
	}
	return out
}

// TestFullFlowLoadAndResolve loads a two-project build from the configured
// repository and resolves the root project's configurations.
func TestFullFlowLoadAndResolve(t *testing.T) {
	env := setupTestEnv(t)
	setupRepository(t, env.RepositoryDir)
	writeFile(t, filepath.Join(env.ProjectDir, "buildconf.yaml"), appBuildFile)
	libDir := filepath.Join(env.ProjectDir, "lib")
	writeFile(t, filepath.Join(libDir, "buildconf.yaml"), libBuildFile)

	ctx := context.Background()

	// Step 1: Load both projects.
	app, err := project.Load(ctx, env.ProjectDir, loadOptions(t, project.Root))
	if err != nil {
		t.Fatalf("Load app: %v", err)
	}
	lib, err := project.Load(ctx, libDir, loadOptions(t, project.Root.Child("lib")))
	if err != nil {
		t.Fatalf("Load lib: %v", err)
	}

	assertStrings(t, "app configurations", app.Configurations().Names(),
		[]string{"api", "implementation", "runtimeClasspath", "strict", "runtimeOnly"})
	libAPI, err := lib.Configuration("api")
	if err != nil {
		t.Fatalf("lib api: %v", err)
	}
	if libAPI.Path() != ":lib:api" {
		t.Errorf("lib api path = %q", libAPI.Path())
	}

	// Step 2: Resolve with the default policy. http is requested at 1.0.0
	// and ^1.1, so the highest requested version wins.
	runtime, err := app.Configuration("runtimeClasspath")
	if err != nil {
		t.Fatalf("runtimeClasspath: %v", err)
	}
	result, err := runtime.Resolve(ctx)
	if err != nil {
		t.Fatalf("Resolve runtimeClasspath: %v", err)
	}
	assertStrings(t, "runtimeClasspath modules", moduleStrings(result.Modules), []string{
		"org.log:logging:1.0.0",
		"com.acme:http:1.3.0",
		"com.acme:web:2.0.0",
		"com.acme:lib:3.0.0",
	})
	if runtime.State() != configuration.Resolved {
		t.Errorf("state = %s, want resolved", runtime.State())
	}

	// Step 3: The strict configuration refuses the same conflict.
	strict, err := app.Configuration("strict")
	if err != nil {
		t.Fatalf("strict: %v", err)
	}
	_, err = strict.Resolve(ctx)
	if !errors.Is(err, resolution.ErrVersionConflict) {
		t.Fatalf("Resolve strict: got %v, want version conflict", err)
	}

	// Step 4: Ad hoc resolution through a detached configuration.
	logging110, err := dependency.Parse("org.log:logging:1.1.0")
	if err != nil {
		t.Fatal(err)
	}
	detached, err := app.Configurations().Detached(logging110)
	if err != nil {
		t.Fatalf("Detached: %v", err)
	}
	if detached.Name() != "detachedConfiguration1" {
		t.Errorf("detached name = %q", detached.Name())
	}
	adhoc, err := detached.Resolve(ctx)
	if err != nil {
		t.Fatalf("Resolve detached: %v", err)
	}
	assertStrings(t, "detached modules", moduleStrings(adhoc.Modules), []string{"org.log:logging:1.1.0"})

	if _, err := app.Configuration(detached.Name()); !errors.Is(err, configuration.ErrUnknownConfiguration) {
		t.Errorf("detached configuration is visible by name: %v", err)
	}
}

// TestHCLAndYAMLBuildFilesAgree checks that the same build declared in both
// formats yields the same configurations and resolution.
func TestHCLAndYAMLBuildFilesAgree(t *testing.T) {
	env := setupTestEnv(t)
	setupRepository(t, env.RepositoryDir)

	yamlDir := filepath.Join(env.ProjectDir, "yaml")
	writeFile(t, filepath.Join(yamlDir, "buildconf.yaml"), `type: project
group: com.acme
name: svc
version: 1.0.0
configurations:
  - name: compile
    dependencies: ["com.acme:web:2.0.0"]
  - name: runtime
    extends_from: [compile]
    strategy:
      force: ["com.acme:http:1.1.0"]
`)
	hclDir := filepath.Join(env.ProjectDir, "hcl")
	writeFile(t, filepath.Join(hclDir, "buildconf.hcl"), `
group   = "com.acme"
name    = "svc"
version = "1.0.0"

configuration "compile" {
  dependencies = ["com.acme:web:2.0.0"]
}

configuration "runtime" {
  extends_from = ["compile"]
  strategy {
    force = ["com.acme:http:1.1.0"]
  }
}
`)

	var dumps, resolved [][]string
	for _, dir := range []string{yamlDir, hclDir} {
		p, err := project.Load(context.Background(), dir, loadOptions(t, project.Root))
		if err != nil {
			t.Fatalf("Load %s: %v", dir, err)
		}
		dumps = append(dumps, []string{p.Configurations().Dump()})

		runtime, err := p.Configuration("runtime")
		if err != nil {
			t.Fatal(err)
		}
		result, err := runtime.Resolve(context.Background())
		if err != nil {
			t.Fatalf("Resolve %s: %v", dir, err)
		}
		resolved = append(resolved, moduleStrings(result.Modules))
	}

	assertStrings(t, "dump", dumps[1], dumps[0])
	assertStrings(t, "modules", resolved[1], resolved[0])
	assertStrings(t, "forced modules", resolved[0], []string{
		"org.log:logging:1.0.0",
		"com.acme:http:1.1.0",
		"com.acme:web:2.0.0",
	})
}
