package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SteveYuOWO/token-tide/internal/render"
	"github.com/SteveYuOWO/token-tide/internal/resolver"
)

func newQueryCmd(u render.UI) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <TOKEN>",
		Short: "Query token info by symbol or address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			simple, _ := cmd.Flags().GetBool("simple")
			noCache, _ := cmd.Flags().GetBool("no-cache")

			a, err := newApp(cmd, u)
			if err != nil {
				return err
			}
			defer a.close()

			token := args[0]
			r := a.resolver(resolver.Options{PreferCache: !noCache, Persist: true})

			stop := u.Spinner(searchingMessage(token))
			res, err := r.Resolve(cmd.Context(), token)
			stop()
			if err != nil {
				a.report(err)
				return nil
			}
			a.logger.Debug("query resolved",
				zap.String("pair_address", res.Pair.PairAddress),
				zap.Bool("from_cache", res.FromCache),
			)

			u.Table(render.DetailHeaders, render.Cells(u, render.DetailRows(res.Pair, simple)))
			return nil
		},
	}

	cmd.Flags().BoolP("simple", "s", false, "only show pair, price and token address")
	cmd.Flags().Bool("no-cache", false, "skip the pair cache lookup and search remotely")
	return cmd
}
