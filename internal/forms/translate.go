package forms

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Translate converts a binding error into field-scoped messages. Errors
// that did not come from the validator (malformed numbers, bad encodings)
// collapse into a single form-level message.
func Translate(err error) Errors {
	errs := Errors{}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.Add("form", "Invalid form submission. Please check your input.")
		return errs
	}

	for _, fe := range verrs {
		errs.Add(snakeCase(fe.Field()), message(fe))
	}
	return errs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return fmt.Sprintf("Must be at least %s characters.", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters.", fe.Param())
	case "eqfield":
		return "Passwords do not match."
	case "gt":
		return "Must be a positive amount."
	case "gte":
		return "Must not be negative."
	default:
		return "Invalid value."
	}
}

// snakeCase turns a struct field name into its form field name,
// e.g. ConfirmPassword -> confirm_password, CategoryID -> category_id.
func snakeCase(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (!unicode.IsUpper(runes[i-1]) ||
				(i+1 < len(runes) && !unicode.IsUpper(runes[i+1]))) {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
