package main

import (
	"review-studio/internal/client"

	"github.com/spf13/cobra"
)

var (
	flagArticleTitle string
	flagImageProduct string
	flagKeyword      string
	flagImageCount   int
	flagImageType    string

	flagUserID      string
	flagAcquireName string
)

var imagesCmd = &cobra.Command{
	Use:   "images",
	Short: "Generate or acquire article images",
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate AI images for an article",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		functions, _ := newFunctions()
		gen := client.NewImageGenerator(functions)
		return printOutcome(cmd, gen.Generate(cmd.Context(), client.ImageRequest{
			ArticleTitle: flagArticleTitle,
			ProductName:  flagImageProduct,
			Keyword:      flagKeyword,
			ImageCount:   flagImageCount,
			ImageType:    flagImageType,
		}))
	},
}

var acquireCmd = &cobra.Command{
	Use:   "acquire <imageUrl>...",
	Short: "Copy product images into the studio bucket",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		functions, _ := newFunctions()
		acq := client.NewImageAcquirer(functions)
		return printOutcome(cmd, acq.Acquire(cmd.Context(), args, flagAcquireName, flagUserID))
	},
}

func init() {
	rootCmd.AddCommand(imagesCmd)
	imagesCmd.AddCommand(generateCmd, acquireCmd)

	generateCmd.Flags().StringVar(&flagArticleTitle, "title", "", "Article title")
	generateCmd.Flags().StringVar(&flagImageProduct, "product", "", "Product name")
	generateCmd.Flags().StringVar(&flagKeyword, "keyword", "", "Target keyword")
	generateCmd.Flags().IntVar(&flagImageCount, "count", 3, "Number of images")
	generateCmd.Flags().StringVar(&flagImageType, "type", "lifestyle", "Image style")

	acquireCmd.Flags().StringVar(&flagUserID, "user", "", "Owner user ID (required)")
	acquireCmd.Flags().StringVar(&flagAcquireName, "name", "", "Product name used for file names")
	_ = acquireCmd.MarkFlagRequired("user")
}
