package app

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newStatsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show appointment statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
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

			stats, err := s.dataSource.Stats(cmd.Context())
			if err != nil {
				return err
			}

			if format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), stats)
			}

			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Total appointees: %d\n\n", stats.TotalAppointees); err != nil {
				return err
			}

			rows := make([][]string, 0, len(stats.ByBatch))
			for _, b := range stats.ByBatch {
				rows = append(rows, []string{strconv.Itoa(b.BatchYear), strconv.Itoa(b.Count)})
			}
			if err := writeTable(cmd.OutOrStdout(), []string{"Batch", "Appointees"}, rows); err != nil {
				return err
			}

			rows = rows[:0]
			for _, m := range stats.ByMinistry {
				rows = append(rows, []string{m.Ministry, strconv.Itoa(m.Count)})
			}
			return writeTable(cmd.OutOrStdout(), []string{"Ministry", "Appointees"}, rows)
		},
	}

	cmd.Flags().String(flagFormat, formatAuto, "Output format (json or table); defaults to table on a terminal")
	return cmd
}
