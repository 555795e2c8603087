package helpers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Rakhulsr/go-catalog/app/apperrors"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	errorMessages := make(map[string]string)
	for _, err := range errs {
		field := jsonFieldName(err)
		switch err.Tag() {
		case "required":
			errorMessages[field] = fmt.Sprintf("%s is required.", field)
		case "email":
			errorMessages[field] = fmt.Sprintf("%s must be a valid email address.", field)
		case "numeric":
			errorMessages[field] = fmt.Sprintf("%s must be a number.", field)
		case "min", "gte":
			errorMessages[field] = fmt.Sprintf("%s must be at least %s.", field, err.Param())
		case "max", "lte":
			errorMessages[field] = fmt.Sprintf("%s must be at most %s.", field, err.Param())
		case "gt":
			errorMessages[field] = fmt.Sprintf("%s must be greater than %s.", field, err.Param())
		case "slug":
			errorMessages[field] = fmt.Sprintf("%s may only contain lower-case letters, digits and hyphens.", field)
		case "product_slug":
			errorMessages[field] = fmt.Sprintf("%s may only contain lower-case letters, digits, underscores and hyphens.", field)
		default:
			errorMessages[field] = fmt.Sprintf("%s failed the %s check.", field, err.Tag())
		}
	}
	return errorMessages
}

// ValidationErrorFrom converts the result of validator.Struct into an
// apperrors validation error. Other errors are passed through.
func ValidationErrorFrom(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.Validation("invalid input", FormatValidationErrors(verrs))
	}
	return err
}

// Namespaces like "CreateOrderInput.Items[0].Quantity" become "items[0].quantity".
func jsonFieldName(err validator.FieldError) string {
	ns := err.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	if ns == "" {
		ns = err.Field()
	}
	return strings.ToLower(ns)
}

func PasswordCompare(hashPass string, password []byte) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashPass), password) == nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(bytes), nil
}
