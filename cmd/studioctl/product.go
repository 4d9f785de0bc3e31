package main

import (
	"review-studio/internal/client"

	"github.com/spf13/cobra"
)

var flagProductName string

var productCmd = &cobra.Command{
	Use:   "product <url>",
	Short: "Scrape a marketplace product page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		functions, cfg := newFunctions()
		fetcher := client.NewProductFetcher(functions, cfg.Client.CacheCapacity)
		return printOutcome(cmd, fetcher.Fetch(cmd.Context(), args[0], flagProductName))
	},
}

func init() {
	rootCmd.AddCommand(productCmd)
	productCmd.Flags().StringVar(&flagProductName, "name", "", "Product name hint")
}
