package main

import (
	"github.com/spf13/cobra"

	"xchanger/internal/adapter/console"
)

func newRateCmd(a *app) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "rate",
		Short: "Convert an amount between two currencies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(cmd, nil, nil, func() error {
				spinner := console.NewSpinner(cmd.ErrOrStderr(), interactive(cmd.ErrOrStderr()))
				spinner.Start("Fetching exchange rate")
				result, err := a.client.GetRate(cmd.Context(), a.query(from, to))
				spinner.Stop()
				if err != nil {
					return err
				}

				console.NewPrinter(cmd.OutOrStdout()).Result(result.String())
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "source currency code (default from XCHANGER_DEFAULTS_FROM)")
	cmd.Flags().StringVar(&to, "to", "", "target currency code (default from XCHANGER_DEFAULTS_TO)")

	return cmd
}
