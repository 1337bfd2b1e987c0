package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lateral-entry-portal/portal/internal/export"
	"github.com/lateral-entry-portal/portal/internal/telemetry"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Generate the static snapshots from the portal database",
		Long: `Export reads every entrant from the portal database and writes stats.json,
batches.json and entrants.json. Documents are validated before any file is
replaced.

The database is a SQLite file path or a postgres:// connection string.
The output directory defaults to export.outputDir, then static.file.dir.

Examples:
  portal export --database portal.db --output ./data
  portal export --database postgres://portal@localhost/portal`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			dsn, err := cmd.Flags().GetString("database")
			if err != nil {
				return fmt.Errorf("failed to get database flag: %w", err)
			}
			if dsn == "" && cfg.Export != nil {
				dsn = cfg.Export.Database
			}
			if dsn == "" {
				return fmt.Errorf("a database is required (--database or export.database)")
			}

			outputDir, err := cmd.Flags().GetString("output")
			if err != nil {
				return fmt.Errorf("failed to get output flag: %w", err)
			}
			if outputDir == "" {
				outputDir = cfg.GetExportOutputDir()
			}

			tel, err := telemetry.New(ctx, cfg.Telemetry)
			if err != nil {
				return err
			}
			defer shutdownTelemetry(tel)

			metrics, err := telemetry.NewExportMetrics(tel.MeterProvider())
			if err != nil {
				return fmt.Errorf("failed to create metrics: %w", err)
			}

			store, err := export.NewStore(ctx, dsn)
			if err != nil {
				return err
			}
			defer store.Close()

			report, err := export.NewExporter(store,
				export.WithMetrics(metrics),
				export.WithTracer(tel.Tracer()),
			).Export(ctx, outputDir)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entrants in %d batches to %s\n",
				report.Entrants, report.Batches, report.Dir)
			return err
		},
	}

	cmd.Flags().String("database", "", "SQLite file path or postgres:// connection string")
	cmd.Flags().StringP("output", "o", "", "Directory to write the snapshots to")
	return cmd
}
