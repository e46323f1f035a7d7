package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mrlokans/myvoca/internal/config"
	"github.com/mrlokans/myvoca/internal/entrypoint"
	"github.com/mrlokans/myvoca/internal/services"
)

var (
	success = color.New(color.FgGreen)
	warning = color.New(color.FgYellow)
	failure = color.New(color.FgRed)
)

// withApp opens the configured database for the duration of fn.
func withApp(fn func(ctx context.Context, app *entrypoint.App) error) error {
	app, err := entrypoint.NewApp(config.NewConfig())
	if err != nil {
		return err
	}
	defer app.Close()
	return fn(context.Background(), app)
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, app *entrypoint.App) error {
				if err := app.DB.Ping(ctx); err != nil {
					return fmt.Errorf("database unreachable after migration: %w", err)
				}
				success.Fprintf(cmd.OutOrStdout(), "Schema is up to date (%s)\n", app.Config.Database.Driver)
				return nil
			})
		},
	}
}

func newReconcileCountsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile-counts",
		Short: "Recompute cached word counts that drifted from the real number of words",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, app *entrypoint.App) error {
				fixed, err := app.Vocabs.ReconcileWordCounts(ctx)
				if err != nil {
					return fmt.Errorf("reconcile word counts: %w", err)
				}
				app.Audit.LogMaintenance("reconcile_word_counts",
					fmt.Sprintf("Reconciled %d vocab word counts from the CLI", fixed),
					map[string]any{"fixed": fixed}, nil)

				if fixed == 0 {
					success.Fprintln(cmd.OutOrStdout(), "All word counts are correct")
					return nil
				}
				warning.Fprintf(cmd.OutOrStdout(), "Fixed %d vocab word count(s)\n", fixed)
				return nil
			})
		},
	}
}

func newEnrichCommand() *cobra.Command {
	var limit int
	var wordID uint

	command := &cobra.Command{
		Use:   "enrich",
		Short: "Fetch dictionary definitions for words that have none",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, app *entrypoint.App) error {
				if app.Dictionary == nil {
					return errors.New("no dictionary configured, set DICTIONARY_BASE_URL")
				}
				out := cmd.OutOrStdout()

				if wordID > 0 {
					return enrichOne(ctx, out, app, services.WordView{WordID: wordID})
				}

				words, err := app.Words.FindWordsWithoutDefinitions(ctx, limit)
				if err != nil {
					return fmt.Errorf("find words without definitions: %w", err)
				}
				if len(words) == 0 {
					success.Fprintln(out, "Every word already has a definition")
					return nil
				}

				var failed int
				for _, word := range words {
					if err := enrichOne(ctx, out, app, word); err != nil {
						failed++
					}
				}
				fmt.Fprintf(out, "\nEnriched %d of %d words\n", len(words)-failed, len(words))
				if failed > 0 {
					return fmt.Errorf("%d word(s) failed", failed)
				}
				return nil
			})
		},
	}

	command.Flags().IntVar(&limit, "limit", 50, "Maximum number of words to enrich (0 = all)")
	command.Flags().UintVar(&wordID, "word-id", 0, "Enrich a single word")
	return command
}

func enrichOne(ctx context.Context, out io.Writer, app *entrypoint.App, word services.WordView) error {
	label := word.Expression
	if label == "" {
		label = fmt.Sprintf("word %d", word.WordID)
	}

	defs, err := app.Definitions.EnrichWord(ctx, word.WordID)
	if err != nil {
		failure.Fprintf(out, "✗ %s: %v\n", label, err)
		return err
	}
	if len(defs) == 0 {
		warning.Fprintf(out, "- %s: not in dictionary\n", label)
		return nil
	}
	success.Fprintf(out, "✓ %s: %d definition(s)\n", label, len(defs))
	return nil
}

func newCleanupCommand() *cobra.Command {
	var retentionDays int

	command := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete orphaned definitions and audit events past retention",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, app *entrypoint.App) error {
				out := cmd.OutOrStdout()

				orphans, err := app.Definitions.DeleteOrphanDefinitions(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Deleted %d orphaned definition(s)\n", orphans)

				if app.Audit == nil {
					warning.Fprintln(out, "Audit logging is disabled, skipping audit events")
					return nil
				}
				days := retentionDays
				if days <= 0 {
					days = app.Config.Audit.RetentionDays
				}
				events, err := app.Audit.DeleteOldEvents(ctx, time.Duration(days)*24*time.Hour)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Deleted %d audit event(s) older than %d days\n", events, days)
				return nil
			})
		},
	}

	command.Flags().IntVar(&retentionDays, "retention-days", 0, "Override AUDIT_RETENTION_DAYS")
	return command
}
