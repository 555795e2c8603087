package helpers

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	// anything ProductSlug can derive, underscores and repeated hyphens included
	productSlugPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)
)

// NewValidator returns a validator that reports json field names and knows
// the "slug" and "product_slug" tags.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("product_slug", func(fl validator.FieldLevel) bool {
		return productSlugPattern.MatchString(fl.Field().String())
	})
	return v
}
