package main

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/cardview/internal/app"
)

type rootFlags struct {
	configPath string
	prefsPath  string
	apiBase    string
	poll       time.Duration
	verbose    bool
}

func (f *rootFlags) options() app.Options {
	return app.Options{
		ConfigPath: f.configPath,
		PrefsPath:  f.prefsPath,
		APIBase:    f.apiBase,
		PollEvery:  f.poll,
		Verbose:    f.verbose,
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "cardview",
		Short: "Browse items from the cardview API as cards",
		Long: `cardview fetches items from a JSON API and shows them as cards together
with the raw response. Without a subcommand it opens the terminal viewer.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.RunTerminal(cmd.Context(), flags.options())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default ~/.config/cardview/config.toml)")
	pf.StringVar(&flags.apiBase, "api", "", "items API base URL (overrides config)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "debug logging")
	root.Flags().StringVar(&flags.prefsPath, "prefs", "", "preferences file (default ~/.config/cardview/prefs.toml)")
	root.Flags().DurationVar(&flags.poll, "poll", 0, "health poll interval (default 2s)")

	root.AddCommand(newServeCmd(flags), newFetchCmd(flags), newLogsCmd(flags))
	return root
}

func newServeCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the items API and the browser page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.RunServer(cmd.Context(), flags.options())
		},
	}
}

func newFetchCmd(flags *rootFlags) *cobra.Command {
	fetch := &cobra.Command{
		Use:   "fetch",
		Short: "Run one request and print the raw response and cards",
	}

	fetch.AddCommand(
		&cobra.Command{
			Use:   "random [N]",
			Short: "Fetch N random items (1-10, default 1)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				n := ""
				if len(args) == 1 {
					n = args[0]
				}
				return app.Fetch(cmd.Context(), flags.options(), app.FetchRandom, n, cmd.OutOrStdout())
			},
		},
		&cobra.Command{
			Use:   "search QUERY",
			Short: "Fetch items matching QUERY",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.Fetch(cmd.Context(), flags.options(), app.FetchSearch, strings.Join(args, " "), cmd.OutOrStdout())
			},
		},
		&cobra.Command{
			Use:   "categories",
			Short: "Print item counts per category",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return app.Categories(cmd.Context(), flags.options(), cmd.OutOrStdout())
			},
		},
	)
	return fetch
}

func newLogsCmd(flags *rootFlags) *cobra.Command {
	var lines int
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the end of the terminal viewer's log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Logs(flags.options(), lines, cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "number of lines")
	return cmd
}
