package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lateral-entry-portal/portal/internal/httpclient"
	"github.com/lateral-entry-portal/portal/internal/snapshot"
	"github.com/lateral-entry-portal/portal/internal/sources"
)

func newValidateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [dir]",
		Short: "Validate the static snapshots against their schemas",
		Long: `Validate checks stats.json, batches.json and entrants.json against their JSON
schemas. Without an argument the configured static source is checked, which
may be a local directory or a remote base URL.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var src sources.StaticSource
			if len(args) == 1 {
				src = sources.NewFileStaticSource(args[0])
			} else {
				cfg, err := opts.loadConfig()
				if err != nil {
					return err
				}
				src, err = sources.NewStaticSource(&cfg.Static, httpclient.NewDefaultClient(cfg.GetTimeout()))
				if err != nil {
					return fmt.Errorf("failed to create static source: %w", err)
				}
			}

			if err := snapshot.ValidateSource(cmd.Context(), src); err != nil {
				return err
			}

			for _, doc := range sources.Documents {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", src.Location(doc)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
