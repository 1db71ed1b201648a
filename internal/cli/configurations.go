package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/buildconf-labs/buildconf/internal/configuration"
)

var configurationsJSON bool

var configurationsCmd = &cobra.Command{
	Use:   "configurations",
	Short: "List the project's configurations",
	Long:  `Load the build file and print every configuration it declares, in declaration order.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigurations,
}

func init() {
	configurationsCmd.Flags().BoolVar(&configurationsJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(configurationsCmd)
}

// configurationEntry represents a configuration for JSON output.
type configurationEntry struct {
	Name         string   `json:"name"`
	Path         string   `json:"path"`
	Description  string   `json:"description,omitempty"`
	Visible      bool     `json:"visible"`
	Transitive   bool     `json:"transitive"`
	ExtendsFrom  []string `json:"extends_from,omitempty"`
	Dependencies []string `json:"dependencies,omitempty"`
}

func newConfigurationEntry(cfg *configuration.Configuration) configurationEntry {
	entry := configurationEntry{
		Name:        cfg.Name(),
		Path:        cfg.Path(),
		Description: cfg.Description(),
		Visible:     cfg.Visible(),
		Transitive:  cfg.Transitive(),
		ExtendsFrom: cfg.ExtendsFromNames(),
	}
	for _, d := range cfg.Dependencies().All() {
		entry.Dependencies = append(entry.Dependencies, d.String())
	}
	return entry
}

func runConfigurations(cmd *cobra.Command, args []string) error {
	p, err := loadProject(cmd)
	if err != nil {
		return err
	}
	container := p.Configurations()

	if configurationsJSON {
		entries := make([]configurationEntry, 0, container.Len())
		for _, cfg := range container.All().Slice() {
			entries = append(entries, newConfigurationEntry(cfg))
		}
		out, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling configurations: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), container.Dump())
	return nil
}
