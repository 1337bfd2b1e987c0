// Package app provides the commands of the portal CLI.
package app

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lateral-entry-portal/portal/internal/config"
	"github.com/lateral-entry-portal/portal/internal/versions"
)

// Flag names shared with viper; each is also read from PORTAL_<NAME>
const (
	flagConfig    = "config"
	flagAPI       = "api"
	flagStaticDir = "static-dir"
	flagStaticURL = "static-url"
	flagTimeout   = "timeout"
	flagFormat    = "format"
)

// NewRootCmd creates the root command of the portal CLI
func NewRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(config.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:               "portal",
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		Short:             "Lateral entry portal data client",
		Long: `portal reads lateral entry appointment data from the portal API, falling back
to the static JSON snapshots when the API is unavailable, and generates those
snapshots from the portal database.`,
		Run: func(cmd *cobra.Command, _ []string) {
			// If no subcommand is provided, print help
			if err := cmd.Help(); err != nil {
				slog.Error("Error displaying help", "error", err)
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String(flagConfig, "", "Path to configuration file (YAML format)")
	flags.String(flagAPI, "", "Portal API base URL (e.g. http://localhost:5000/api)")
	flags.String(flagStaticDir, "", "Directory holding the static snapshots")
	flags.String(flagStaticURL, "", "Base URL of the static snapshots")
	flags.String(flagTimeout, "", "HTTP timeout (e.g. 10s)")
	rootCmd.MarkFlagsMutuallyExclusive(flagStaticDir, flagStaticURL)

	for _, name := range []string{flagConfig, flagAPI, flagStaticDir, flagStaticURL, flagTimeout} {
		if err := v.BindPFlag(name, flags.Lookup(name)); err != nil {
			slog.Error("Error binding flag", "flag", name, "error", err)
		}
	}

	opts := &rootOptions{v: v}
	rootCmd.AddCommand(
		newFetchCmd(opts),
		newStatsCmd(opts),
		newBatchCmd(opts),
		newExportCmd(opts),
		newMigrateCmd(opts),
		newValidateCmd(opts),
		newServeCmd(opts),
		newVersionCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := versions.GetVersionInfo()
			format, err := cmd.Flags().GetString(flagFormat)
			if err != nil {
				return fmt.Errorf("failed to get format flag: %w", err)
			}

			if format == formatJSON {
				output, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to format version info as JSON: %w", err)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(output))
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "portal %s (commit %s, built %s, %s, %s)\n",
				info.Version, info.Commit, info.BuildDate, info.GoVersion, info.Platform)
			return err
		},
	}
	cmd.Flags().String(flagFormat, "", "Output format (json)")
	return cmd
}
