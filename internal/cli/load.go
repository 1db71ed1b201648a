package cli

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/buildconf-labs/buildconf/internal/config"
	"github.com/buildconf-labs/buildconf/internal/dependency"
	"github.com/buildconf-labs/buildconf/internal/logging"
	"github.com/buildconf-labs/buildconf/internal/manifest"
	"github.com/buildconf-labs/buildconf/internal/project"
	"github.com/buildconf-labs/buildconf/internal/repository"
)

func projectOptions(cmd *cobra.Command) (project.Options, error) {
	settings, err := config.Current()
	if err != nil {
		return project.Options{}, err
	}
	return project.Options{
		Repository: repository.NewLocal(settings.RepositoryPath, settings.CacheTTL),
		Logger:     logging.FromContext(cmd.Context()),
	}, nil
}

// loadProject loads the build file in --project-dir.
func loadProject(cmd *cobra.Command) (*project.Project, error) {
	opts, err := projectOptions(cmd)
	if err != nil {
		return nil, err
	}
	return project.Load(cmd.Context(), projectDir, opts)
}

// loadOrEmptyProject falls back to an empty project named after the
// directory when there is no build file.
func loadOrEmptyProject(cmd *cobra.Command) (*project.Project, error) {
	if _, err := manifest.FindBuildFile(projectDir); err == nil {
		return loadProject(cmd)
	}
	info, err := os.Stat(projectDir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, errors.New(projectDir + " is not a directory")
	}

	opts, err := projectOptions(cmd)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(projectDir)
	if err != nil {
		return nil, err
	}
	return project.New(abs, dependency.Module{Name: filepath.Base(abs), Version: "unspecified"}, opts)
}
