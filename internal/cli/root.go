// Package cli implements the myvoca command line: the HTTP server and the
// maintenance commands that operate on the database directly.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/mrlokans/myvoca/internal/config"
	"github.com/mrlokans/myvoca/internal/entrypoint"
)

// NewRootCommand builds the myvoca command tree. Running it without a
// subcommand starts the server.
func NewRootCommand(version string) *cobra.Command {
	root := &cobra.Command{
		Use:           "myvoca",
		Short:         "Vocabulary lists, words and learning stats over HTTP",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return entrypoint.Run(config.NewConfig(), version)
		},
	}

	root.AddCommand(
		newServeCommand(version),
		newMigrateCommand(),
		newReconcileCountsCommand(),
		newEnrichCommand(),
		newCleanupCommand(),
	)
	return root
}

func newServeCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server (default if no command given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return entrypoint.Run(config.NewConfig(), version)
		},
	}
}
