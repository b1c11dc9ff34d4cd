package main

import (
	"github.com/spf13/cobra"

	"github.com/SteveYuOWO/token-tide/internal/render"
	"github.com/SteveYuOWO/token-tide/internal/resolver"
	"github.com/SteveYuOWO/token-tide/internal/storage"
)

func newCacheCmd(u render.UI) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or reset the pair cache",
	}

	listCmd := &cobra.Command{
		Use:   "list [FILTER]",
		Short: "Show cached pairs, optionally fuzzy-filtered",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, u)
			if err != nil {
				return err
			}
			defer a.close()

			if a.store == nil {
				a.report(resolver.ErrNoStore)
				return nil
			}
			pairs, err := a.store.Pairs(cmd.Context())
			if err != nil {
				a.report(err)
				return nil
			}
			if len(args) == 1 {
				pairs = storage.FuzzyFind(pairs, args[0])
			}
			if len(pairs) == 0 {
				u.Info("No cached pairs.")
				return nil
			}
			u.Table(render.CacheHeaders, render.CacheRows(pairs))
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, u)
			if err != nil {
				return err
			}
			defer a.close()

			if a.store == nil {
				a.report(resolver.ErrNoStore)
				return nil
			}
			if err := a.store.Clear(cmd.Context()); err != nil {
				a.report(err)
				return nil
			}
			u.Success("Pair cache cleared.")
			return nil
		},
	}

	cmd.AddCommand(listCmd, clearCmd)
	return cmd
}
