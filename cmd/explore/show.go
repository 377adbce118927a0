package main

import (
	"fmt"
	"strings"

	"github.com/NoraMoser/exploring/internal/catalog"
	"github.com/NoraMoser/exploring/internal/model"
	"github.com/NoraMoser/exploring/internal/web"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newShowCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show CODE",
		Short: "Show the details of one country by its three-letter code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := opts.newService()
			if err != nil {
				return err
			}
			defer cleanup()

			detail, err := svc.GetCountry(cmd.Context(), args[0])
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), web.ErrLoadingCountry)
				return err
			}

			printDetail(cmd, detail)
			return nil
		},
	}
}

func printDetail(cmd *cobra.Command, d *model.CountryDetail) {
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Field", "Value"})
	table.SetAutoWrapText(false)
	table.AppendBulk([][]string{
		{"Code", d.Code},
		{"Common Name", d.CommonName},
		{"Official Name", d.OfficialName},
		{"Capital", d.Capital},
		{"Region", d.Region},
		{"Subregion", d.Subregion},
		{"Continents", d.Continents},
		{"Languages", d.Languages},
		{"Population", d.Population},
		{"Area", d.Area},
		{"Currencies", strings.Join(d.Currencies, ", ")},
		{"Timezones", d.Timezones},
		{"Calling Code", d.CallingCode},
		{"Location", location(d.Map)},
		{"Flag", d.Flag.Alt},
	})
	table.Render()
}

func location(m *model.MapView) string {
	if m == nil {
		return catalog.NotAvailable
	}
	return fmt.Sprintf("%.2f, %.2f", m.Center.Lat, m.Center.Lon)
}
