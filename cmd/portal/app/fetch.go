package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lateral-entry-portal/portal/internal/datasource"
)

func newFetchCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch <endpoint>",
		Short: "Fetch a portal endpoint and print its JSON",
		Long: `Fetch resolves one logical endpoint and prints the JSON response.

Endpoints: stats, batches, batches/<year>, entrants, entrants/<id>,
ministries, positions, search, timeline.

Examples:
  portal fetch stats
  portal fetch entrants --param limit=6
  portal fetch "search?q=finance"
  portal fetch batches/2021 --api http://localhost:5000/api`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rawParams, err := cmd.Flags().GetStringArray("param")
			if err != nil {
				return fmt.Errorf("failed to get param flag: %w", err)
			}
			params, err := parseParams(rawParams)
			if err != nil {
				return err
			}

			s, err := opts.newSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			res := s.dataSource.FetchResource(cmd.Context(), args[0], params)
			slog.Debug("Fetched resource",
				"endpoint", res.Endpoint,
				"origin", res.Origin,
				"status", res.Status,
			)
			if err := res.AsError(); err != nil {
				return err
			}

			var out bytes.Buffer
			if err := json.Indent(&out, res.Data, "", "  "); err != nil {
				return fmt.Errorf("failed to format response: %w", err)
			}
			out.WriteByte('\n')
			_, err = out.WriteTo(cmd.OutOrStdout())
			return err
		},
	}

	cmd.Flags().StringArrayP("param", "p", nil, "Request parameter as key=value (repeatable)")
	return cmd
}

// parseParams turns key=value pairs into request params
func parseParams(raw []string) (datasource.Params, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	params := make(datasource.Params, len(raw))
	for _, kv := range raw {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q, expected key=value", kv)
		}
		params[key] = value
	}
	return params, nil
}
