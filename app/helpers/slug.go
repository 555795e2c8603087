package helpers

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// PendingSlugPrefix marks a product row whose slug is assigned after insert,
// once its id is known.
const PendingSlugPrefix = "pending-"

var (
	nonWordChars = regexp.MustCompile(`[^\w\s-]`)
	whitespace   = regexp.MustCompile(`\s+`)
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
)

// SlugBase lower-cases s, drops everything except word characters, whitespace
// and hyphens, and turns whitespace runs into single hyphens.
func SlugBase(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonWordChars.ReplaceAllString(s, "")
	return whitespace.ReplaceAllString(s, "-")
}

// ProductSlug derives the unique slug of a product from its title and id,
// e.g. "Red T-Shirt!!", 42 -> "red-t-shirt-42".
func ProductSlug(title string, id uint) string {
	base := SlugBase(title)
	if base == "" {
		return strconv.FormatUint(uint64(id), 10)
	}
	return base + "-" + strconv.FormatUint(uint64(id), 10)
}

func PendingSlug() string {
	return PendingSlugPrefix + uuid.NewString()
}

// GenerateSlug builds a strict [a-z0-9-] slug, used to suggest collection slugs.
func GenerateSlug(s string) string {
	s = strings.ToLower(s)
	s = nonSlugChars.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	return s
}
