package client

import (
	"context"
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutoFill_RequiresProductOrNiche(t *testing.T) {
	fns := newFakeFunctions()
	filler := NewCompetitorAutofiller(fns)

	out := filler.AutoFill(context.Background(), "  ", "", "review")
	assert.True(t, out.Failed())
	assert.Equal(t, KindValidation, out.Kind)
	assert.Equal(t, msgAutofillNeedsInput, out.Message)
	assert.Equal(t, msgAutofillNeedsInput, filler.State().Error)
	assert.Zero(t, fns.callCount())
}

func TestAutoFill_UsesPrimaryKeyword(t *testing.T) {
	fns := newFakeFunctions()
	fns.on(FunctionGenerateMetadata, func(p map[string]interface{}) (interface{}, error) {
		return map[string]interface{}{
			"titles":         []string{"Best Wireless Mice 2024"},
			"primaryKeyword": "best wireless mouse for work",
			"keywords":       []string{"ergonomic mouse", "silent mouse"},
		}, nil
	})
	filler := NewCompetitorAutofiller(fns)

	out := filler.AutoFill(context.Background(), "Logitech M185", "Computer Accessories", "review")
	require.True(t, out.OK(), out.Message)
	assert.Equal(t, "best wireless mouse for work", out.Data.TargetKeyword)
	assert.Equal(t, "Logitech M185", out.Data.ProductName)
	assert.Equal(t, []string{"ergonomic mouse", "silent mouse"}, out.Data.SuggestedKeywords)

	payload := fns.calls[0].payload
	assert.Equal(t, true, payload["includeKeywords"])
	assert.Equal(t, "review", payload["articleType"])
}

func TestAutoFill_DerivesProductFromTitle(t *testing.T) {
	fns := newFakeFunctions()
	fns.on(FunctionGenerateMetadata, func(map[string]interface{}) (interface{}, error) {
		return map[string]interface{}{"titles": []string{"Best Standing Desks 2025: Tested and Ranked"}}, nil
	})
	filler := NewCompetitorAutofiller(fns)

	out := filler.AutoFill(context.Background(), "", "Office Furniture", "roundup")
	require.True(t, out.OK())
	assert.Equal(t, "best office furniture products", out.Data.TargetKeyword)
	assert.Equal(t, "Standing Desks", out.Data.ProductName)
	assert.NotNil(t, out.Data.SuggestedKeywords)
	assert.Empty(t, out.Data.SuggestedKeywords)
}

func TestAutoFill_RemoteFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"remote message", &RemoteError{Message: "OpenAI quota reached"}, "OpenAI quota reached"},
		{"transport error", errors.New("dial tcp: connection refused"), msgAutofillFallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fns := newFakeFunctions()
			fns.on(FunctionGenerateMetadata, func(map[string]interface{}) (interface{}, error) {
				return nil, tt.err
			})
			filler := NewCompetitorAutofiller(fns)

			out := filler.AutoFill(context.Background(), "Mouse", "", "")
			assert.True(t, out.Failed())
			assert.Equal(t, tt.want, out.Message)
			assert.Nil(t, filler.State().Data)
			assert.False(t, filler.State().IsLoading)
		})
	}
}

func TestTargetKeyword(t *testing.T) {
	tests := []struct {
		primary, product, niche string
		want                    string
	}{
		{"best budget mouse", "Mouse", "Tech", "best budget mouse"},
		{"  ", "Mouse", "Tech", "best Mouse"},
		{"", "", "Home Gym", "best home gym products"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TargetKeyword(tt.primary, tt.product, tt.niche))
	}
}

func TestProductFromTitle(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Best Wireless Mice 2024", "Wireless Mice"},
		{"The Best Air Fryers Review", "Air Fryers"},
		{"best espresso machines guide for beginners", "espresso machines"},
		{"Top Picks: Best Running Shoes", "Running Shoes"},
		{"Ten Great Blenders", ""},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, ProductFromTitle(tt.title))
		})
	}
}

// Feature: review-studio, Property 15: Auto-fill always yields a target keyword
func TestProperty_AutoFillTargetKeyword(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("target keyword is never empty when a niche is given", prop.ForAll(
		func(niche string) bool {
			fns := newFakeFunctions()
			fns.on(FunctionGenerateMetadata, func(map[string]interface{}) (interface{}, error) {
				return map[string]interface{}{}, nil
			})
			out := NewCompetitorAutofiller(fns).AutoFill(context.Background(), "", niche, "")
			return out.OK() && out.Data.TargetKeyword != "" && out.Data.ProductName == ""
		},
		gen.AlphaString().SuchThat(func(s string) bool { return s != "" }),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
