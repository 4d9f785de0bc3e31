package client

import (
	"context"
	"strings"

	"review-studio/internal/domain"
	"review-studio/internal/marketplace"

	lru "github.com/hashicorp/golang-lru/v2"
)

const DefaultCacheCapacity = 128

const (
	msgEmptyProductURL   = "Please enter an Amazon product URL"
	msgInvalidProductURL = "Please enter a valid Amazon product URL"
	msgProductFallback   = "Failed to fetch product data"
)

type scrapeProductRequest struct {
	URL         string `json:"url"`
	ProductName string `json:"productName,omitempty"`
}

type scrapeProductResponse struct {
	Success bool            `json:"success"`
	Product *domain.Product `json:"product"`
}

// ProductFetcher looks up marketplace product pages through the scrape
// function and caches records by their exact source URL.
type ProductFetcher struct {
	functions Functions
	cache     *lru.Cache[string, *domain.Product]
	state     tracker[*domain.Product]
}

// NewProductFetcher creates a ProductFetcher whose cache holds capacity
// records. Non-positive capacities use DefaultCacheCapacity.
func NewProductFetcher(functions Functions, capacity int) *ProductFetcher {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	cache, err := lru.New[string, *domain.Product](capacity)
	if err != nil {
		// only returned for non-positive sizes
		panic(err)
	}
	return &ProductFetcher{functions: functions, cache: cache}
}

// Fetch returns the product at url. hint is an optional product name passed
// through to the scrape.
func (p *ProductFetcher) Fetch(ctx context.Context, url string, hint string) Outcome[*domain.Product] {
	if strings.TrimSpace(url) == "" {
		p.state.settle(nil, msgEmptyProductURL)
		return failed[*domain.Product](KindValidation, msgEmptyProductURL, nil)
	}
	if !marketplace.IsValidProductURL(url) {
		p.state.settle(nil, msgInvalidProductURL)
		return failed[*domain.Product](KindValidation, msgInvalidProductURL, nil)
	}

	if cached, ok := p.cache.Get(url); ok {
		p.state.settle(cached, "")
		return succeeded(cached)
	}

	token := p.state.begin()

	var resp scrapeProductResponse
	err := p.functions.Invoke(ctx, FunctionScrapeProduct, scrapeProductRequest{URL: url, ProductName: hint}, &resp)
	if err == nil && resp.Product == nil {
		err = ErrMalformedResponse
	}
	if err != nil {
		msg := remoteMessage(err, msgProductFallback)
		p.state.fail(token, msg)
		return failed[*domain.Product](KindRemote, msg, nil)
	}

	p.cache.Add(url, resp.Product)
	p.state.succeed(token, resp.Product)
	return succeeded(resp.Product)
}

// State is a snapshot of the latest request.
func (p *ProductFetcher) State() State[*domain.Product] {
	return p.state.snapshot()
}

// Scraped reports whether the current slot holds a fetched record. It is read
// from the same snapshot as State, so the two always agree.
func (p *ProductFetcher) Scraped() bool {
	state := p.state.snapshot()
	return state.Data != nil && state.Error == ""
}

// Clear empties the current slot. The cache is kept.
func (p *ProductFetcher) Clear() {
	p.state.reset()
}

// Cached reports whether url has a cached record.
func (p *ProductFetcher) Cached(url string) bool {
	return p.cache.Contains(url)
}

// CacheLen is the number of cached records.
func (p *ProductFetcher) CacheLen() int {
	return p.cache.Len()
}
