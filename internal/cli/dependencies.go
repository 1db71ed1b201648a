package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/buildconf-labs/buildconf/internal/configuration"
	"github.com/buildconf-labs/buildconf/internal/resolution"
)

var dependenciesCmd = &cobra.Command{
	Use:   "dependencies [configuration...]",
	Short: "Print resolved dependency trees",
	Long: `Resolve each named configuration (all of them when none are given) and
print its dependency tree. Failed declarations are marked FAILED; the command
still prints every tree and then exits non-zero.`,
	RunE: runDependencies,
}

func init() {
	rootCmd.AddCommand(dependenciesCmd)
}

func runDependencies(cmd *cobra.Command, args []string) error {
	p, err := loadProject(cmd)
	if err != nil {
		return err
	}
	container := p.Configurations()

	var targets []*configuration.Configuration
	if len(args) == 0 {
		targets = container.All().Slice()
	} else {
		for _, name := range args {
			cfg, err := container.GetByName(name)
			if err != nil {
				return err
			}
			targets = append(targets, cfg)
		}
	}

	out := cmd.OutOrStdout()
	var errs []error
	for i, cfg := range targets {
		if i > 0 {
			fmt.Fprintln(out)
		}
		printHeader(out, cfg)

		result, err := cfg.Resolve(cmd.Context())
		if err != nil {
			fmt.Fprintf(out, "Could not resolve: %v\n", err)
			errs = append(errs, err)
			continue
		}
		resolution.PrintTree(out, result)
		if result.HasFailures() {
			errs = append(errs, fmt.Errorf("%s has %d unresolved dependencies", cfg, len(result.Failures)))
		}
	}
	return errors.Join(errs...)
}

func printHeader(w io.Writer, cfg *configuration.Configuration) {
	if d := cfg.Description(); d != "" {
		fmt.Fprintf(w, "%s - %s\n", cfg.Name(), d)
		return
	}
	fmt.Fprintln(w, cfg.Name())
}
