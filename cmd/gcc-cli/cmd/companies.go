package cmd

import (
	"log"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	companiesCmd.Flags().StringVarP(&companiesQuery, "query", "q", "", "filter by company name substring")
	companiesCmd.Flags().StringVarP(&companiesLocation, "location", "l", "", "filter by location substring")
	rootCmd.AddCommand(companiesCmd)
}

var companiesQuery string
var companiesLocation string

type companyRow struct {
	ID        int64  `json:"ID"`
	Name      string `json:"Name"`
	Website   string `json:"Website"`
	Locations string `json:"Locations"`
	Sources   string `json:"Sources"`
	UpdatedAt int64  `json:"UpdatedAt"`
}

var companiesCmd = &cobra.Command{
	Use:   "companies",
	Short: "Lists the companies tracked so far.",
	Run: func(cmd *cobra.Command, args []string) {
		var companies []companyRow
		httpRes, err := client.R().
			SetContext(cmd.Context()).
			SetQueryParam("q", companiesQuery).
			SetQueryParam("location", companiesLocation).
			SetResult(&companies).
			Get("/companies")
		if err != nil {
			log.Fatal(err)
		}
		if httpRes.IsError() {
			log.Fatalf("list failed: %s: %s", httpRes.Status(), httpRes.String())
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"ID", "Name", "Website", "Locations", "Sources", "Updated"})
		for _, c := range companies {
			t.AppendRow(table.Row{
				c.ID, c.Name, c.Website, c.Locations, c.Sources,
				time.Unix(c.UpdatedAt, 0).Format(time.ANSIC),
			})
		}
		t.Render()
	},
}
