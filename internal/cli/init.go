package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/buildconf-labs/buildconf/internal/scaffold"
)

var (
	initGroup       string
	initName        string
	initVersion     string
	initDescription string
	initModule      bool
	initDeps        []string
)

func init() {
	initCmd.Flags().StringVar(&initGroup, "group", "", "Module group (required)")
	initCmd.Flags().StringVar(&initName, "name", "", "Module name (default: directory name)")
	initCmd.Flags().StringVar(&initVersion, "version", "0.1.0", "Module version")
	initCmd.Flags().StringVar(&initDescription, "description", "", "Short description")
	initCmd.Flags().BoolVar(&initModule, "module", false, "Write a repository module.yaml instead of a build file")
	initCmd.Flags().StringSliceVar(&initDeps, "dependency", nil, "Dependency notation to declare (repeatable)")
	_ = initCmd.MarkFlagRequired("group")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter build file",
	Long: `Write a buildconf.yaml with the standard api, implementation, runtimeOnly and
runtimeClasspath configurations into --project-dir. With --module, write a
module.yaml for publishing into a repository instead.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	name := initName
	if name == "" {
		abs, err := filepath.Abs(projectDir)
		if err != nil {
			return err
		}
		name = filepath.Base(abs)
	}

	data := scaffold.NewData(initGroup, name)
	data.Version = initVersion
	data.Description = initDescription
	data.Dependencies = initDeps

	kind := scaffold.KindProject
	if initModule {
		kind = scaffold.KindModule
	}

	result, err := scaffold.Generate(kind, data, projectDir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created %s\n", result.Path)
	for _, w := range result.Warnings {
		fmt.Fprintf(out, "  warning: %s\n", w)
	}
	return nil
}
