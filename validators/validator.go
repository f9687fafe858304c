package validators

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// UUIDPattern is the canonical 8-4-4-4-12 hex form, case-insensitive.
var UUIDPattern = regexp.MustCompile(`^(?i)[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// IsUUID reports whether s is a canonical hyphenated UUID string.
func IsUUID(s string) bool {
	return UUIDPattern.MatchString(s)
}

// Validator implements echo.Validator on top of go-playground/validator.
type Validator struct {
	validate *validator.Validate
}

// NewValidator registers the project's custom tags:
//
//	uuidstr  canonical UUID string (any hex case)
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("uuidstr", func(fl validator.FieldLevel) bool {
		return IsUUID(fl.Field().String())
	})
	return &Validator{validate: v}
}

// Validate validates a struct using its `validate` tags.
func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}
