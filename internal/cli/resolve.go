package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/buildconf-labs/buildconf/internal/dependency"
	"github.com/buildconf-labs/buildconf/internal/resolution"
)

var (
	resolveConflict string
	resolveForce    []string
	resolveFlat     bool
	resolveNoTrans  bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <notation>...",
	Short: "Resolve ad hoc dependencies",
	Long: `Resolve the given dependency notations (group:name[:version] or :project)
in a detached configuration. Nothing is added to the project's configurations.
A build file is optional.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().StringVar(&resolveConflict, "conflict", "", "Version conflict policy (latest, fail)")
	resolveCmd.Flags().StringSliceVar(&resolveForce, "force", nil, "Pin a module to an exact version (group:name:version)")
	resolveCmd.Flags().BoolVar(&resolveFlat, "flat", false, "Print the resolved modules instead of the tree")
	resolveCmd.Flags().BoolVar(&resolveNoTrans, "no-transitive", false, "Do not follow dependencies of dependencies")
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	deps, err := dependency.ParseAll(args)
	if err != nil {
		return err
	}

	p, err := loadOrEmptyProject(cmd)
	if err != nil {
		return err
	}

	cfg, err := p.Configurations().Detached(deps...)
	if err != nil {
		return err
	}
	cfg.SetTransitive(!resolveNoTrans)

	strategy := cfg.ResolutionStrategy()
	if resolveConflict != "" {
		policy, err := resolution.ParseConflictPolicy(resolveConflict)
		if err != nil {
			return err
		}
		strategy.SetConflictPolicy(policy)
	}
	if err := strategy.Force(resolveForce...); err != nil {
		return err
	}

	result, err := cfg.Resolve(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if resolveFlat {
		for _, m := range result.Modules {
			fmt.Fprintln(out, m)
		}
	} else {
		resolution.PrintTree(out, result)
	}
	if result.HasFailures() {
		return fmt.Errorf("%d dependencies could not be resolved", len(result.Failures))
	}
	return nil
}
