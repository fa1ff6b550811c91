package cmd

import (
	"log"
	"os"
	"strings"

	"gcctracker-backend/services/tracker"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(variantsCmd)
}

var variantsCmd = &cobra.Command{
	Use:   "variants <company>",
	Short: "Prints the search variants a company query expands into, without hitting any source.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		normalizer := tracker.NewNormalizer(tracker.DefaultAliases())
		norm, err := normalizer.Normalize(strings.Join(args, " "))
		if err != nil {
			log.Fatal(err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Variant"})
		for _, v := range norm.Variants {
			t.AppendRow(table.Row{v})
		}
		t.Render()
	},
}
