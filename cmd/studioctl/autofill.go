package main

import (
	"review-studio/internal/client"

	"github.com/spf13/cobra"
)

var (
	flagAutofillProduct string
	flagAutofillNiche   string
	flagArticleType     string
)

var autofillCmd = &cobra.Command{
	Use:   "autofill",
	Short: "Derive competitor research fields for a product or niche",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		functions, _ := newFunctions()
		filler := client.NewCompetitorAutofiller(functions)
		return printOutcome(cmd, filler.AutoFill(cmd.Context(), flagAutofillProduct, flagAutofillNiche, flagArticleType))
	},
}

func init() {
	rootCmd.AddCommand(autofillCmd)
	autofillCmd.Flags().StringVar(&flagAutofillProduct, "product", "", "Product name")
	autofillCmd.Flags().StringVar(&flagAutofillNiche, "niche", "", "Niche")
	autofillCmd.Flags().StringVar(&flagArticleType, "type", "review", "Article type")
}
