package marketplace

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

const (
	maxSlugLength  = 50
	defaultAltName = "Product"
)

// Namer derives storage file names. Now is injectable for tests.
type Namer struct {
	Now func() time.Time
}

// NewNamer returns a Namer on the wall clock.
func NewNamer() *Namer {
	return &Namer{Now: time.Now}
}

// GenerateFilename builds `{slug}-image-{index+1}-{unixMillis}.jpg`.
func (n *Namer) GenerateFilename(productName string, index int) string {
	now := time.Now
	if n != nil && n.Now != nil {
		now = n.Now
	}
	return fmt.Sprintf("%s-image-%d-%d.jpg", Slugify(productName), index+1, now().UnixMilli())
}

// GenerateFilename uses the wall clock.
func GenerateFilename(productName string, index int) string {
	return NewNamer().GenerateFilename(productName, index)
}

// Slugify lower-cases name, drops everything outside [a-z0-9 -], turns
// whitespace runs (tabs, newlines and NBSP included) into single hyphens and cuts the result to 50 bytes.
func Slugify(name string) string {
	lowered := strings.ToLower(name)

	var b strings.Builder
	b.Grow(len(lowered))
	inSpace := false
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
			inSpace = false
		case unicode.IsSpace(r):
			if !inSpace {
				b.WriteByte('-')
			}
			inSpace = true
		}
	}

	slug := b.String()
	if len(slug) > maxSlugLength {
		slug = slug[:maxSlugLength]
	}
	return slug
}

// AltText is `{productName or "Product"} - Image {index+1}`.
func AltText(productName string, index int) string {
	name := productName
	if name == "" {
		name = defaultAltName
	}
	return fmt.Sprintf("%s - Image %d", name, index+1)
}
