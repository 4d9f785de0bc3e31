package marketplace

import (
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Feature: review-studio, Property 3: Generated filenames follow the SEO naming scheme
func TestProperty_GenerateFilenameShape(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("filename is slug, index and timestamp", prop.ForAll(
		func(name string, index int) bool {
			filename := GenerateFilename(name, index)
			pattern := regexp.MustCompile(fmt.Sprintf(`^[a-z0-9-]{0,50}-image-%d-\d+\.jpg$`, index+1))
			return pattern.MatchString(filename)
		},
		gen.AnyString(),
		gen.IntRange(0, 5),
	))

	properties.Property("slug never exceeds 50 characters", prop.ForAll(
		func(name string) bool {
			return len(Slugify(name)) <= 50
		},
		gen.AnyString(),
	))

	properties.Property("slug has no space runs", prop.ForAll(
		func(words []string) bool {
			slug := Slugify(strings.Join(words, "   "))
			return !strings.Contains(slug, " ")
		},
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestNamer_UsesInjectedClock(t *testing.T) {
	at := time.UnixMilli(1700000000123)
	namer := &Namer{Now: func() time.Time { return at }}

	got := namer.GenerateFilename("Wireless Mouse!", 0)
	want := "wireless-mouse-image-1-1700000000123.jpg"
	if got != want {
		t.Errorf("GenerateFilename = %q, want %q", got, want)
	}
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Wireless Mouse":          "wireless-mouse",
		"  Leading   spaces ":     "-leading-spaces-",
		"Café & Crème 2024":       "caf-crme-2024",
		"already-hyphenated name": "already-hyphenated-name",
		"":                        "",
		"Wireless\tMouse":         "wireless-mouse",
		"Wireless\nMouse":         "wireless-mouse",
		"Wireless\u00a0Mouse":     "wireless-mouse",
		"Wireless \t\u00a0 Mouse": "wireless-mouse",
	}

	for in, want := range tests {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}

	long := strings.Repeat("a", 80)
	if got := Slugify(long); got != strings.Repeat("a", 50) {
		t.Errorf("Slugify did not truncate: %q", got)
	}
}

func TestAltText(t *testing.T) {
	if got := AltText("Wireless Mouse", 0); got != "Wireless Mouse - Image 1" {
		t.Errorf("AltText = %q", got)
	}
	if got := AltText("", 2); got != "Product - Image 3" {
		t.Errorf("AltText fallback = %q", got)
	}
}
