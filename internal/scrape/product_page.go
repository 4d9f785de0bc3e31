// Package scrape extracts product records from marketplace product pages.
package scrape

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"review-studio/internal/domain"
	"review-studio/internal/marketplace"

	"github.com/PuerkitoBio/goquery"
)

var (
	ErrBotChallenge = errors.New("marketplace requested captcha verification")
	ErrNoTitle      = errors.New("product title not found on page")
)

// ParseProductPage reads a product detail page. The returned record has URL
// and ASIN left for the caller to fill.
func ParseProductPage(html []byte) (*domain.Product, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing product page: %w", err)
	}
	if err := detectBotChallenge(doc); err != nil {
		return nil, err
	}

	title := text(doc.Find("#productTitle"))
	if title == "" {
		return nil, ErrNoTitle
	}

	product := &domain.Product{
		Title: title,
		Brand: cleanBrand(text(doc.Find("#bylineInfo"))),
		Price: firstNonEmpty(
			text(doc.Find("#corePrice_feature_div span.a-offscreen")),
			text(doc.Find("span#priceblock_ourprice")),
			text(doc.Find("span#priceblock_dealprice")),
			text(doc.Find("span.a-price span.a-offscreen")),
		),
		Rating: firstNonEmpty(
			text(doc.Find("span[data-hook='rating-out-of-text']")),
			text(doc.Find("#acrPopover span.a-icon-alt")),
		),
		ReviewCount:  text(doc.Find("#acrCustomerReviewText")),
		Availability: text(doc.Find("#availability span")),
		Features:     featureBullets(doc),
		ImageURLs:    imageURLs(doc),
	}
	return product, nil
}

func detectBotChallenge(doc *goquery.Document) error {
	if doc.Find(`form[action*="validateCaptcha"]`).Length() > 0 {
		return ErrBotChallenge
	}
	if doc.Find("#captchacharacters").Length() > 0 {
		return ErrBotChallenge
	}

	content := strings.ToLower(doc.Text())
	if strings.Contains(content, "enter the characters you see") || strings.Contains(content, "type the characters you see") {
		return ErrBotChallenge
	}
	return nil
}

func featureBullets(doc *goquery.Document) []string {
	features := make([]string, 0)
	doc.Find("#feature-bullets li").Each(func(_ int, s *goquery.Selection) {
		if s.HasClass("aok-hidden") {
			return
		}
		if f := collapse(s.Text()); f != "" {
			features = append(features, f)
		}
	})
	return features
}

// imageURLs gathers the gallery in page order, upgraded to high resolution
// and de-duplicated.
func imageURLs(doc *goquery.Document) []string {
	seen := make(map[string]bool)
	urls := make([]string, 0)
	add := func(raw string) {
		raw = strings.TrimSpace(raw)
		if !strings.HasPrefix(raw, "http") {
			return
		}
		u := marketplace.HighResImageURL(raw)
		if seen[u] {
			return
		}
		seen[u] = true
		urls = append(urls, u)
	}

	landing := doc.Find("#landingImage, #imgBlkFront").First()
	add(landing.AttrOr("data-old-hires", ""))
	for _, u := range dynamicImageURLs(landing.AttrOr("data-a-dynamic-image", "")) {
		add(u)
	}
	add(landing.AttrOr("src", ""))

	doc.Find("#altImages img").Each(func(_ int, s *goquery.Selection) {
		add(s.AttrOr("src", ""))
	})
	return urls
}

// dynamicImageURLs decodes the {url: [w, h]} map Amazon puts on the landing
// image, largest first.
func dynamicImageURLs(attr string) []string {
	if attr == "" {
		return nil
	}
	var sizes map[string][]int
	if err := json.Unmarshal([]byte(attr), &sizes); err != nil {
		return nil
	}

	urls := make([]string, 0, len(sizes))
	for u := range sizes {
		urls = append(urls, u)
	}
	area := func(u string) int {
		if d := sizes[u]; len(d) == 2 {
			return d[0] * d[1]
		}
		return 0
	}
	sort.Slice(urls, func(i, j int) bool {
		if area(urls[i]) != area(urls[j]) {
			return area(urls[i]) > area(urls[j])
		}
		return urls[i] < urls[j]
	})
	return urls
}

func cleanBrand(byline string) string {
	b := byline
	for _, prefix := range []string{"Visit the ", "Brand: "} {
		b = strings.TrimPrefix(b, prefix)
	}
	b = strings.TrimSuffix(b, " Store")
	return strings.TrimSpace(b)
}

func text(sel *goquery.Selection) string {
	return collapse(sel.First().Text())
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
