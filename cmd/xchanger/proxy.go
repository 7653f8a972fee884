package main

import (
	"github.com/spf13/cobra"

	"xchanger/internal/adapter/console"
)

func newProxyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "proxy",
		Short: "Proxy utilities",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Verify the proxy and show the public IP address it exposes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(cmd, nil, nil, func() error {
				msg, err := a.client.CheckProxy(cmd.Context(), a.proxy)
				if err != nil {
					return err
				}

				console.NewPrinter(cmd.OutOrStdout()).Result(msg)
				return nil
			})
		},
	})

	return cmd
}
