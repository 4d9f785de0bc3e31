package client

import (
	"context"
	"regexp"
	"strings"

	"review-studio/internal/domain"
)

const (
	msgAutofillNeedsInput = "Please enter a product name or niche first"
	msgAutofillFallback   = "Failed to auto-fill competitor fields"
)

// bestTitlePattern pulls X out of "Best X 2024", "Best X Review", "Best X Guide"
// or a trailing "Best X".
var bestTitlePattern = regexp.MustCompile(`(?i)\bbest\s+(.+?)(?:\s+(?:\d{4}|review|guide)\b|$)`)

type metadataRequest struct {
	ProductName     string `json:"productName,omitempty"`
	Niche           string `json:"niche,omitempty"`
	ArticleType     string `json:"articleType,omitempty"`
	IncludeKeywords bool   `json:"includeKeywords"`
}

type metadataResponse struct {
	Titles         []string `json:"titles"`
	PrimaryKeyword string   `json:"primaryKeyword"`
	Keywords       []string `json:"keywords"`
}

// CompetitorAutofiller derives competitor research fields from generated
// article metadata.
type CompetitorAutofiller struct {
	functions Functions
	state     tracker[*domain.CompetitorFields]
}

func NewCompetitorAutofiller(functions Functions) *CompetitorAutofiller {
	return &CompetitorAutofiller{functions: functions}
}

// AutoFill needs at least one of productName and niche.
func (a *CompetitorAutofiller) AutoFill(ctx context.Context, productName, niche, articleType string) Outcome[*domain.CompetitorFields] {
	productName = strings.TrimSpace(productName)
	niche = strings.TrimSpace(niche)
	if productName == "" && niche == "" {
		a.state.settle(nil, msgAutofillNeedsInput)
		return failed[*domain.CompetitorFields](KindValidation, msgAutofillNeedsInput, nil)
	}

	token := a.state.begin()

	var resp metadataResponse
	err := a.functions.Invoke(ctx, FunctionGenerateMetadata, metadataRequest{
		ProductName:     productName,
		Niche:           niche,
		ArticleType:     articleType,
		IncludeKeywords: true,
	}, &resp)
	if err != nil {
		msg := remoteMessage(err, msgAutofillFallback)
		a.state.fail(token, msg)
		return failed[*domain.CompetitorFields](KindRemote, msg, nil)
	}

	fields := &domain.CompetitorFields{
		TargetKeyword:     TargetKeyword(resp.PrimaryKeyword, productName, niche),
		ProductName:       productName,
		SuggestedKeywords: resp.Keywords,
	}
	if fields.SuggestedKeywords == nil {
		fields.SuggestedKeywords = []string{}
	}
	if productName == "" && len(resp.Titles) > 0 {
		fields.ProductName = ProductFromTitle(resp.Titles[0])
	}

	a.state.succeed(token, fields)
	return succeeded(fields)
}

// State is a snapshot of the latest request.
func (a *CompetitorAutofiller) State() State[*domain.CompetitorFields] {
	return a.state.snapshot()
}

// TargetKeyword prefers the remote primary keyword, then "best {product}",
// then "best {niche} products".
func TargetKeyword(primary, productName, niche string) string {
	if p := strings.TrimSpace(primary); p != "" {
		return p
	}
	if productName != "" {
		return "best " + productName
	}
	return "best " + strings.ToLower(niche) + " products"
}

// ProductFromTitle extracts X from a "best X" title, or "".
func ProductFromTitle(title string) string {
	m := bestTitlePattern.FindStringSubmatch(title)
	if m == nil {
		return ""
	}
	return strings.TrimRight(strings.TrimSpace(m[1]), ":-–,")
}
