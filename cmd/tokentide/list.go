package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SteveYuOWO/token-tide/internal/render"
	"github.com/SteveYuOWO/token-tide/internal/resolver"
)

func newListCmd(u render.UI) *cobra.Command {
	return &cobra.Command{
		Use:   "list <TOKEN>",
		Short: "Query list tokens by symbol or address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, u)
			if err != nil {
				return err
			}
			defer a.close()

			token := args[0]
			stop := u.Spinner(searchingMessage(token))
			pairs, err := a.resolver(resolver.Options{}).List(cmd.Context(), token)
			stop()
			if err != nil {
				a.report(err)
				return nil
			}

			u.Table(render.ListHeaders, render.ListRows(pairs))
			return nil
		},
	}
}

func searchingMessage(token string) string {
	return fmt.Sprintf("Searching %s ...", strings.ToUpper(token))
}
