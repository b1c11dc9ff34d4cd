package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SteveYuOWO/token-tide/internal/render"
	"github.com/SteveYuOWO/token-tide/internal/resolver"
)

func newAddCmd(u render.UI) *cobra.Command {
	return &cobra.Command{
		Use:   "add <ADDRESS>",
		Short: "Resolve a token or pair address and save it to the pair cache",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, u)
			if err != nil {
				return err
			}
			defer a.close()

			address := args[0]
			stop := u.Spinner(fmt.Sprintf("Resolving %s ...", address))
			res, inserted, err := a.resolver(resolver.Options{}).Register(cmd.Context(), address)
			stop()
			if err != nil {
				a.report(err)
				return nil
			}

			name := res.Pair.Symbol()
			if inserted {
				u.Success("Saved %s on %s (%s).", name, res.Pair.ChainID, res.Pair.PairAddress)
			} else {
				u.Info("%s on %s is already cached.", name, res.Pair.ChainID)
			}
			u.Table(render.DetailHeaders, render.Cells(u, render.DetailRows(res.Pair, true)))
			return nil
		},
	}
}
