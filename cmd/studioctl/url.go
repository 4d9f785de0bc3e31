package main

import (
	"net/url"

	"review-studio/internal/marketplace"

	"github.com/spf13/cobra"
)

// urlReport is what url check prints.
type urlReport struct {
	URL             string `json:"url"`
	MarketplaceHost bool   `json:"marketplaceHost"`
	ValidProduct    bool   `json:"validProduct"`
	ASIN            string `json:"asin,omitempty"`
	HighResImage    string `json:"highResImage,omitempty"`
}

var urlCmd = &cobra.Command{
	Use:   "url",
	Short: "Inspect marketplace URLs locally",
}

var urlCheckCmd = &cobra.Command{
	Use:   "check <url>",
	Short: "Classify a product URL or upgrade an image URL without calling any function",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printJSON(cmd, checkURL(args[0]))
	},
}

func init() {
	rootCmd.AddCommand(urlCmd)
	urlCmd.AddCommand(urlCheckCmd)
}

func checkURL(raw string) urlReport {
	report := urlReport{
		URL:          raw,
		ValidProduct: marketplace.IsValidProductURL(raw),
	}
	if u, err := url.Parse(raw); err == nil {
		report.MarketplaceHost = marketplace.IsMarketplaceHost(u.Hostname())
	}
	if asin, ok := marketplace.ExtractASIN(raw); ok {
		report.ASIN = asin
	}
	if upgraded, ok := marketplace.UpgradeToHighResImage(raw); ok {
		report.HighResImage = upgraded
	}
	return report
}
