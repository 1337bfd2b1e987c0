package app

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"

	"github.com/lateral-entry-portal/portal/database"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tool",
		Long:  `Database migration tool for the lateral_entrants schema. Use with 'up' or 'down' subcommands.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Usage()
		},
	}

	cmd.PersistentFlags().String("database", "", "SQLite file path or postgres:// connection string")
	cmd.PersistentFlags().UintP("num-steps", "n", 0, "Number of steps to migrate (0 = all)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply pending database migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runMigrate(cmd, opts, true)
			},
		},
		newMigrateDownCmd(opts),
	)

	return cmd
}

func newMigrateDownCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Migrate the database down",
		Long: `Migrate the database schema down by reverting migrations.
WARNING: This operation can result in data loss. Use with caution.

Examples:
  # Migrate down by 1 step
  portal migrate down --database portal.db --num-steps 1 --yes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			yes, err := cmd.Flags().GetBool("yes")
			if err != nil {
				return fmt.Errorf("failed to get yes flag: %w", err)
			}
			if !yes {
				return fmt.Errorf("refusing to migrate down without --yes")
			}
			return runMigrate(cmd, opts, false)
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "Confirm the migration")
	return cmd
}

func runMigrate(cmd *cobra.Command, opts *rootOptions, up bool) error {
	dsn, err := cmd.Flags().GetString("database")
	if err != nil {
		return fmt.Errorf("failed to get database flag: %w", err)
	}
	if dsn == "" {
		cfg, err := opts.loadConfig()
		if err != nil {
			return err
		}
		if cfg.Export != nil {
			dsn = cfg.Export.Database
		}
	}

	numSteps, err := cmd.Flags().GetUint("num-steps")
	if err != nil {
		return fmt.Errorf("failed to get num-steps flag: %w", err)
	}

	m, err := database.GetMigrate(dsn)
	if err != nil {
		return err
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			slog.Warn("Error closing migrations", "error", errors.Join(srcErr, dbErr))
		}
	}()

	switch {
	case numSteps > 0 && up:
		err = m.Steps(int(numSteps))
	case numSteps > 0:
		err = m.Steps(-int(numSteps))
	case up:
		err = m.Up()
	default:
		err = m.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		_, err = fmt.Fprintln(cmd.OutOrStdout(), "No migrations applied")
		return err
	case err != nil:
		slog.Warn("Unable to get migration version", "error", err)
		return nil
	case dirty:
		slog.Warn("Database is in a dirty state", "version", version)
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Schema version: %d\n", version)
	return err
}
