package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// BuildFileNames is the lookup order for a project's build file.
var BuildFileNames = []string{"buildconf.yaml", "buildconf.json", "buildconf.hcl"}

// ModuleFileName is the module manifest name inside a repository version directory.
const ModuleFileName = "module.yaml"

// FindBuildFile returns the first build file present in dir.
func FindBuildFile(dir string) (string, error) {
	for _, name := range BuildFileNames {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("no build file found in %s (looked for %v)", dir, BuildFileNames)
}

// Parse reads a YAML or JSON manifest and returns only the base fields.
func Parse(path string) (*BaseManifest, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	var base BaseManifest
	if err := yaml.Unmarshal(data, &base); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	return &base, nil
}

// ParseFile reads a manifest file, detects its type, and returns the
// fully typed manifest struct: *ProjectManifest or *ModuleManifest.
// HCL files are always project manifests.
func ParseFile(path string) (interface{}, error) {
	if isHCL(path) {
		return ParseProject(path)
	}

	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	typeName, err := detectType(data)
	if err != nil {
		return nil, fmt.Errorf("detecting manifest type in %s: %w", path, err)
	}

	switch typeName {
	case TypeProject:
		return parseTyped[ProjectManifest](data, path)
	case TypeModule:
		return parseTyped[ModuleManifest](data, path)
	default:
		return nil, fmt.Errorf("unknown manifest type %q in %s", typeName, path)
	}
}

// ParseProject reads a build file in any supported format.
func ParseProject(path string) (*ProjectManifest, error) {
	if isHCL(path) {
		return parseHCLProject(path)
	}
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	m, err := parseTyped[ProjectManifest](data, path)
	if err != nil {
		return nil, err
	}
	if m.Type == "" {
		m.Type = TypeProject
	}
	if m.Type != TypeProject {
		return nil, fmt.Errorf("manifest %s has type %q, want %q", path, m.Type, TypeProject)
	}
	return m, nil
}

// ParseModule reads a module manifest.
func ParseModule(path string) (*ModuleManifest, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	m, err := parseTyped[ModuleManifest](data, path)
	if err != nil {
		return nil, err
	}
	if m.Type != "" && m.Type != TypeModule {
		return nil, fmt.Errorf("manifest %s has type %q, want %q", path, m.Type, TypeModule)
	}
	return m, nil
}

// parseTyped unmarshals YAML data into a typed manifest struct.
func parseTyped[T any](data []byte, path string) (*T, error) {
	var m T
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return &m, nil
}

// detectType unmarshals YAML data into a generic map and extracts the type field.
func detectType(data []byte) (string, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return "", fmt.Errorf("unmarshaling YAML: %w", err)
	}

	typeVal, ok := raw["type"]
	if !ok {
		return "", fmt.Errorf("manifest missing required 'type' field")
	}

	typeName, ok := typeVal.(string)
	if !ok {
		return "", fmt.Errorf("manifest 'type' field is not a string")
	}

	return typeName, nil
}

func isHCL(path string) bool {
	return filepath.Ext(path) == ".hcl"
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
