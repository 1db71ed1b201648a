package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/buildconf-labs/buildconf/internal/manifest"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a build file against the schema",
	Long:  `Validate a build or module file. Without an argument the build file in --project-dir is checked.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) == 1 {
		path = args[0]
	} else {
		found, err := manifest.FindBuildFile(projectDir)
		if err != nil {
			return err
		}
		path = found
	}

	result, err := manifest.ValidateFile(path)
	if err != nil {
		return fmt.Errorf("validating %s: %w", path, err)
	}

	out := cmd.OutOrStdout()
	if result.Valid {
		fmt.Fprintf(out, "%s is valid\n", path)
		return nil
	}

	fmt.Fprintf(out, "%s has %d issue(s):\n", path, len(result.Issues))
	for _, issue := range result.Issues {
		fmt.Fprintf(out, "  %s\n", issue)
	}
	return fmt.Errorf("%s is not valid", path)
}
