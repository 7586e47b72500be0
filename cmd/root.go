// Package cmd holds the command-line surface. Every command wires the full
// application and renders one service call.
package cmd

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath string
	dataPath   string
	format     string
}

// NewRootCommand builds the CLI tree.
func NewRootCommand(version string) *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "content-intel",
		Short: "Content intelligence aggregator",
		Long: `content-intel inspects content entities through a set of intelligence
plugins and aggregates their findings into a single report per entity.

Plugins contribute independent analyses (word counts, age, view statistics,
translation status); one plugin failing never spoils the rest of the report.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "directory holding config.yaml")
	pf.StringVar(&flags.dataPath, "data", "", "JSON fixture file with content entities")
	pf.StringVarP(&flags.format, "format", "f", "table", "output format: table or json")

	rootCmd.AddCommand(
		newEntityTypesCommand(flags),
		newBundlesCommand(flags),
		newFieldsCommand(flags),
		newPluginsCommand(flags),
		newEntitiesCommand(flags),
		newSummaryCommand(flags),
		newIntelCommand(flags),
		newBatchCommand(flags),
		newServeCommand(flags),
	)
	return rootCmd
}
