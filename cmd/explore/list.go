package main

import (
	"fmt"

	"github.com/NoraMoser/exploring/internal/catalog"
	"github.com/NoraMoser/exploring/internal/model"
	"github.com/NoraMoser/exploring/internal/web"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newListCmd(opts *options) *cobra.Command {
	var (
		query    string
		page     int
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List countries sorted by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := opts.newService()
			if err != nil {
				return err
			}
			defer cleanup()

			view, err := svc.ListCountries(cmd.Context(), model.ListRequest{
				Query:    query,
				Page:     page,
				PageSize: pageSize,
			})
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), web.ErrLoadingCountries)
				return err
			}

			printList(cmd, view)
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Only show countries whose common name contains this text")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "Page to show")
	cmd.Flags().IntVar(&pageSize, "page-size", catalog.DefaultPageSize, "Countries per page")
	return cmd
}

func printList(cmd *cobra.Command, view *model.ListView) {
	out := cmd.OutOrStdout()
	if view.Empty {
		fmt.Fprintln(out, catalog.EmptyMessage)
	} else {
		table := tablewriter.NewWriter(out)
		table.SetHeader([]string{"Code", "Common Name", "Official Name"})
		table.SetAutoWrapText(false)
		for _, row := range view.Rows {
			table.Append([]string{row.Code, row.CommonName, row.OfficialName})
		}
		table.Render()
	}
	fmt.Fprintf(out, "Page %d of %d\n", view.Page, view.PageCount)
}
