package domain

import "time"

// Product is the record the product-lookup function returns for a marketplace page
type Product struct {
	URL          string    `json:"url"`
	ASIN         string    `json:"asin"`
	Title        string    `json:"title"`
	Brand        string    `json:"brand,omitempty"`
	Price        string    `json:"price,omitempty"`
	Rating       string    `json:"rating,omitempty"`
	ReviewCount  string    `json:"reviewCount,omitempty"`
	Availability string    `json:"availability,omitempty"`
	Features     []string  `json:"features"`
	ImageURLs    []string  `json:"imageUrls"`
	FetchedAt    time.Time `json:"fetchedAt"`
}

// CompetitorFields is the autofill result for the competitor research step
type CompetitorFields struct {
	TargetKeyword     string   `json:"targetKeyword"`
	ProductName       string   `json:"productName"`
	SuggestedKeywords []string `json:"suggestedKeywords"`
}

// GeneratedImage is one image produced by the AI image-generation function
type GeneratedImage struct {
	URL     string `json:"url"`
	Prompt  string `json:"prompt,omitempty"`
	AltText string `json:"altText,omitempty"`
	Type    string `json:"type,omitempty"`
}
