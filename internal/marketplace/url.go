// Package marketplace holds the Amazon URL conventions the studio is built
// against: product-page classification, image resolution tokens and the SEO
// file names images are stored under.
package marketplace

import (
	"net/url"
	"regexp"
	"strings"
)

// HighResToken is the size code Amazon serves 1500px images for.
const HighResToken = "SL1500"

// supportedTLDs lists the marketplace storefronts accepted as product sources.
var supportedTLDs = []string{
	"com", "ca", "com.mx", "com.br",
	"co.uk", "de", "fr", "it", "es", "nl", "se", "pl", "com.be", "com.tr",
	"ae", "sa", "eg", "in", "sg", "co.jp", "cn", "com.au",
}

var hostPrefixes = []string{"", "www.", "smile.", "m."}

var (
	productPathPattern = regexp.MustCompile(`(?:^|/)(?:dp|gp/product|gp/aw/d|exec/obidos/ASIN)/([A-Za-z0-9]{10})(?:[/?]|$)`)
	sizeTokenPattern   = regexp.MustCompile(`\._[^./]+_\.(jpeg|jpg|gif|png|webp|bmp|svg)`)
)

var marketplaceHosts = func() map[string]bool {
	hosts := make(map[string]bool, len(supportedTLDs)*len(hostPrefixes))
	for _, tld := range supportedTLDs {
		for _, prefix := range hostPrefixes {
			hosts[prefix+"amazon."+tld] = true
		}
	}
	return hosts
}()

// IsMarketplaceHost reports whether host is one of the supported storefronts.
func IsMarketplaceHost(host string) bool {
	return marketplaceHosts[strings.ToLower(host)]
}

// IsValidProductURL reports whether raw is an absolute http(s) URL pointing at a
// product page of a supported storefront.
func IsValidProductURL(raw string) bool {
	_, ok := ExtractASIN(raw)
	return ok
}

// ExtractASIN returns the product identifier embedded in a product-page URL.
func ExtractASIN(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	parsed, err := url.Parse(raw)
	if err != nil || !parsed.IsAbs() {
		return "", false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", false
	}
	if parsed.User != nil || !IsMarketplaceHost(parsed.Hostname()) {
		return "", false
	}

	match := productPathPattern.FindStringSubmatch(parsed.EscapedPath())
	if match == nil {
		return "", false
	}
	return strings.ToUpper(match[1]), true
}

// UpgradeToHighResImage swaps the `._<token>_.` size segment in front of the
// file extension for the high resolution token. The second return value is
// false when no token was found and the URL came back unchanged.
func UpgradeToHighResImage(thumbnailURL string) (string, bool) {
	loc := sizeTokenPattern.FindStringSubmatchIndex(thumbnailURL)
	if loc == nil {
		return thumbnailURL, false
	}

	ext := thumbnailURL[loc[2]:loc[3]]
	upgraded := thumbnailURL[:loc[0]] + "._" + HighResToken + "_." + ext + thumbnailURL[loc[1]:]
	return upgraded, true
}

// HighResImageURL is UpgradeToHighResImage for callers that don't care whether
// the URL changed.
func HighResImageURL(thumbnailURL string) string {
	upgraded, _ := UpgradeToHighResImage(thumbnailURL)
	return upgraded
}
