package main

import (
	"github.com/spf13/cobra"

	"github.com/SteveYuOWO/token-tide/internal/render"
)

func newRootCmd(u render.UI) *cobra.Command {
	root := &cobra.Command{
		Use:           "tokentide",
		Short:         "Look up DexScreener token pairs from the terminal",
		SilenceErrors: true, // run prints returned errors through the UI
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "settings file path")
	flags.String("api-url", "", "DexScreener API base URL")
	flags.String("store", "", "pair cache file (default ~/.config/token-tide/config.toml)")
	flags.String("store-dsn", "", "Postgres DSN; caches pairs in Postgres instead of the file")
	flags.String("log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		newListCmd(u),
		newQueryCmd(u),
		newAddCmd(u),
		newCacheCmd(u),
	)
	return root
}
