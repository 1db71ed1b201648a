//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir       string // HOME, holds .buildconf/config.yaml
	RepositoryDir string // BUILDCONF_REPOSITORY, the local module repository
	ProjectDir    string // A mock root project directory
}

// setupTestEnv creates isolated temp directories and sets environment variables
// so all buildconf operations are sandboxed. The env vars are restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:       t.TempDir(),
		RepositoryDir: t.TempDir(),
		ProjectDir:    t.TempDir(),
	}

	t.Setenv("HOME", env.HomeDir)
	t.Setenv("BUILDCONF_REPOSITORY", env.RepositoryDir)
	viper.Reset()
	t.Cleanup(viper.Reset)

	return env
}

// setupRepository publishes a small module graph:
//
//	com.acme:web:2.0.0 -> com.acme:http:^1.1, org.log:logging:1.0.0
//	com.acme:http:1.0.0, 1.1.0, 1.3.0 -> org.log:logging:1.0.0
//	org.log:logging:1.0.0, 1.1.0
func setupRepository(t *testing.T, root string) {
	t.Helper()
	writeModule(t, root, "com.acme", "web", "2.0.0", "com.acme:http:^1.1", "org.log:logging:1.0.0")
	for _, v := range []string{"1.0.0", "1.1.0", "1.3.0"} {
		writeModule(t, root, "com.acme", "http", v, "org.log:logging:1.0.0")
	}
	writeModule(t, root, "org.log", "logging", "1.0.0")
	writeModule(t, root, "org.log", "logging", "1.1.0")
}

// writeModule writes <root>/<group>/<name>/<version>/module.yaml.
func writeModule(t *testing.T, root, group, name, version string, deps ...string) {
	t.Helper()
	var b strings.Builder
	b.WriteString("type: module\ngroup: " + group + "\nname: " + name + "\nversion: " + version + "\n")
	if len(deps) > 0 {
		b.WriteString("dependencies:\n")
		for _, d := range deps {
			b.WriteString("  - \"" + d + "\"\n")
		}
	}
	writeFile(t, filepath.Join(root, group, name, version, "module.yaml"), b.String())
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertStrings fails the test if got and want differ.
func assertStrings(t *testing.T, what string, got, want []string) {
	t.Helper()
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("%s:\n got  %q\n want %q", what, got, want)
	}
}
