package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"review-studio/internal/client"
	"review-studio/internal/config"

	"github.com/spf13/cobra"
)

// Persistent flag variables.
var (
	flagBaseURL string
	flagAPIKey  string
	flagTimeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "studioctl",
	Short: "studioctl drives the review studio functions from a terminal",
	Long: `studioctl calls the same remote functions the authoring wizard uses:
product scraping, competitor auto-fill, AI image generation and product
image acquisition.

Usage:
  studioctl product <url>
  studioctl autofill --product "Logitech M185" --niche "Computer Accessories"
  studioctl images acquire --user u1 <imageUrl>...
  studioctl url check <url>`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "Functions base URL (default: FUNCTIONS_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&flagAPIKey, "api-key", "", "Functions API key (default: FUNCTIONS_API_KEY)")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 0, "Per-call timeout (default: FUNCTIONS_TIMEOUT_SECONDS)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newFunctions builds the remote functions client from config plus flags.
func newFunctions() (client.Functions, *config.Config) {
	cfg := config.Load()
	if flagBaseURL != "" {
		cfg.Functions.BaseURL = flagBaseURL
	}
	if flagAPIKey != "" {
		cfg.Functions.APIKey = flagAPIKey
	}
	if flagTimeout > 0 {
		cfg.Functions.TimeoutSeconds = int(flagTimeout.Seconds())
	}
	return client.NewHTTPFunctions(cfg.Functions, nil), cfg
}

// printOutcome writes the outcome data as JSON. Failures become the command
// error; empty results print their message to stderr.
func printOutcome[T any](cmd *cobra.Command, out client.Outcome[T]) error {
	if out.Failed() {
		return errors.New(out.Message)
	}
	if out.Status == client.StatusEmpty {
		fmt.Fprintln(cmd.ErrOrStderr(), out.Message)
	}
	return printJSON(cmd, out.Data)
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
