package cmd

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(resolveCmd)
}

type resolveRequest struct {
	Name string `json:"name"`
}

type companyResponse struct {
	Name           string    `json:"name"`
	Website        string    `json:"website"`
	LinkedinURL    string    `json:"linkedin_url"`
	Description    string    `json:"description"`
	Locations      []string  `json:"locations"`
	Sources        []string  `json:"sources"`
	LastResolvedAt time.Time `json:"last_resolved_at"`
}

type executiveResponse struct {
	Name         string `json:"name"`
	Title        string `json:"title"`
	RoleCategory string `json:"role_category"`
	LinkedinURL  string `json:"linkedin_url"`
}

type resolveResponse struct {
	Company    *companyResponse    `json:"company"`
	Executives []executiveResponse `json:"executives"`
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <company>",
	Short: "Resolves a company and its executives across all sources.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var res resolveResponse
		httpRes, err := client.R().
			SetContext(cmd.Context()).
			SetBody(resolveRequest{Name: strings.Join(args, " ")}).
			SetResult(&res).
			Post("/resolve")
		if err != nil {
			log.Fatal(err)
		}
		if httpRes.IsError() {
			log.Fatalf("resolve failed: %s: %s", httpRes.Status(), httpRes.String())
		}

		if res.Company != nil {
			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"Field", "Value"})
			t.AppendRows([]table.Row{
				{"Name", res.Company.Name},
				{"Website", res.Company.Website},
				{"LinkedIn", res.Company.LinkedinURL},
				{"Locations", strings.Join(res.Company.Locations, ", ")},
				{"Sources", strings.Join(res.Company.Sources, ", ")},
				{"Resolved", res.Company.LastResolvedAt.Format(time.ANSIC)},
			})
			t.Render()

			if res.Company.Description != "" {
				fmt.Println()
				fmt.Println(res.Company.Description)
			}
		}

		if len(res.Executives) > 0 {
			fmt.Println()
			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"Name", "Title", "Category", "LinkedIn"})
			for _, e := range res.Executives {
				t.AppendRow(table.Row{e.Name, e.Title, e.RoleCategory, e.LinkedinURL})
			}
			t.Render()
		}
	},
}
