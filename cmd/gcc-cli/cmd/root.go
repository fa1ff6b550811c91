package cmd

import (
	"fmt"
	"os"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
)

var BaseUrl = "http://localhost:8000"

var client *resty.Client

var rootCmd = &cobra.Command{
	Use:   "gcc-cli",
	Short: "gcc-cli is a CLI interface for the GCC tracker service.",
}

func Execute() {
	client = resty.New().SetBaseURL(BaseUrl)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
