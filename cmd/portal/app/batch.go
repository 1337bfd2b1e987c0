package app

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lateral-entry-portal/portal/internal/entrants"
)

func newBatchCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <year>",
		Short: "Show the appointees of one batch year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("batch year must be a number: %q", args[0])
			}

			format, err := cmd.Flags().GetString(flagFormat)
			if err != nil {
				return fmt.Errorf("failed to get format flag: %w", err)
			}
			format, err = resolveFormat(format, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			s, err := opts.newSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			summary, err := s.dataSource.Batch(cmd.Context(), year)
			if err != nil {
				return err
			}

			if format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), summary)
			}
			return writeBatchTable(cmd, summary)
		},
	}

	cmd.Flags().String(flagFormat, formatAuto, "Output format (json or table); defaults to table on a terminal")
	return cmd
}

func writeBatchTable(cmd *cobra.Command, summary *entrants.BatchSummary) error {
	out := cmd.OutOrStdout()
	_, err := fmt.Fprintf(out, "Batch %d: %d appointees, %d ministries, %d positions\n\n",
		summary.BatchYear,
		summary.Statistics.Total,
		summary.Statistics.Ministries,
		summary.Statistics.Positions,
	)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(summary.Entrants))
	for _, e := range summary.Entrants {
		rows = append(rows, []string{strconv.FormatInt(e.ID, 10), e.Name, e.Position, e.Ministry})
	}
	return writeTable(out, []string{"ID", "Name", "Position", "Ministry"}, rows)
}
