package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/buildconf-labs/buildconf/internal/manifest"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Kinds of file Generate can produce.
const (
	KindProject = manifest.TypeProject
	KindModule  = manifest.TypeModule
)

// Data holds all template variables available to scaffold templates.
type Data struct {
	Group        string
	Name         string
	Version      string
	Description  string
	Dependencies []string // notations, e.g. "com.acme:core:^1.0"
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	Path     string
	Warnings []string
}

// NewData creates Data with a default version.
func NewData(group, name string) *Data {
	return &Data{Group: group, Name: name, Version: "0.1.0"}
}

func fileName(kind string) (tmpl, out string, err error) {
	switch kind {
	case KindProject:
		return "buildconf.yaml.tmpl", manifest.BuildFileNames[0], nil
	case KindModule:
		return "module.yaml.tmpl", manifest.ModuleFileName, nil
	default:
		return "", "", fmt.Errorf("unknown scaffold kind %q (want %q or %q)", kind, KindProject, KindModule)
	}
}

// Generate renders the template for kind into outputDir. An existing file
// is never overwritten. For a project, any existing build file in another
// format also blocks generation.
func Generate(kind string, data *Data, outputDir string) (*Result, error) {
	tmplName, outName, err := fileName(kind)
	if err != nil {
		return nil, err
	}

	if kind == KindProject {
		if existing, err := manifest.FindBuildFile(outputDir); err == nil {
			return nil, fmt.Errorf("build file %s already exists", existing)
		}
	}
	outPath := filepath.Join(outputDir, outName)
	if _, err := os.Stat(outPath); err == nil {
		return nil, fmt.Errorf("%s already exists", outPath)
	}

	tmpl, err := template.ParseFS(templateFS, "templates/"+tmplName)
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", tmplName, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", tmplName, err)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", outPath, err)
	}

	result := &Result{Path: outPath}

	// Validate the generated file against JSON Schema.
	valResult, valErr := manifest.Validate(buf.Bytes())
	if valErr != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Could not validate %s: %v", outName, valErr))
	} else if !valResult.Valid {
		for _, issue := range valResult.Issues {
			result.Warnings = append(result.Warnings, issue.String())
		}
	}

	return result, nil
}
