package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/buildconf-labs/buildconf/internal/branding"
	"github.com/buildconf-labs/buildconf/internal/config"
	"github.com/buildconf-labs/buildconf/internal/logging"
	"github.com/buildconf-labs/buildconf/internal/tracing"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	projectDir     string
	tracerProvider *tracing.Provider
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` loads a project's build file, registers its named dependency
configurations, and resolves them against a local module repository.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&projectDir, "project-dir", "p", ".", "Directory containing the build file")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.String("repository", "", "Local module repository root")
	flags.String("trace", "", "Trace exporter (none, stdout, otlp)")

	_ = viper.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	_ = viper.BindPFlag(config.KeyRepository, flags.Lookup("repository"))
	_ = viper.BindPFlag(config.KeyTraceExporter, flags.Lookup("trace"))
}

// setup loads settings and puts the logger into the command context.
func setup(cmd *cobra.Command, args []string) error {
	config.Load()
	settings, err := config.Current()
	if err != nil {
		return err
	}

	logger := logging.New(settings.LogLevel, settings.LogFormat, cmd.ErrOrStderr())
	ctx := logging.WithLogger(cmd.Context(), logger)

	tracerProvider, err = tracing.NewProvider(ctx, tracing.Config{
		Exporter:    settings.TraceExporter,
		Endpoint:    settings.TraceEndpoint,
		ServiceName: branding.CLIName(),
		Writer:      cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	cmd.SetContext(ctx)
	return nil
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := run(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func run(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if tracerProvider != nil {
		if shutdownErr := tracerProvider.Shutdown(ctx); shutdownErr != nil && err == nil {
			err = fmt.Errorf("flushing traces: %w", shutdownErr)
		}
		tracerProvider = nil
	}
	return err
}
