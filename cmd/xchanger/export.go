package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"xchanger/internal/adapter/console"
	"xchanger/internal/domain/model"
)

func newExportCmd(a *app) *cobra.Command {
	var from, to, format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a rate table against every supported currency",
		Long: "Export a rate table against every supported currency.\n\n" +
			"Set --from to convert out of one currency, or --to to convert into it.\n" +
			"With neither, the table converts out of USD.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			exportFormat, err := model.ParseExportFormat(format)
			if err != nil {
				return err
			}

			progress := console.NewProgressBar(cmd.ErrOrStderr(), interactive(cmd.ErrOrStderr()))
			return a.withClient(cmd, nil, progress, func() error {
				printer := console.NewPrinter(cmd.OutOrStdout())
				printer.Note(fmt.Sprintf("Fetching %d currencies", len(model.SupportedCurrencies)))

				path, err := a.client.Export(cmd.Context(), a.query(from, to), exportFormat)
				if err != nil {
					return err
				}

				printer.Result(fmt.Sprintf("Data saved to %s", path))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "hold the source currency fixed")
	cmd.Flags().StringVar(&to, "to", "", "hold the target currency fixed")
	cmd.Flags().StringVarP(&format, "format", "f", "xlsx", "output format: xlsx, csv or json")

	return cmd
}
