package config

import (
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/nxzen/onboardd/pkg/errors"
)

// identifierPattern accepts unquoted PostgreSQL identifiers (at most 63 bytes).
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$]{0,62}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("pgident", func(fl validator.FieldLevel) bool {
		return identifierPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("pgurl", func(fl validator.FieldLevel) bool {
		_, err := ParseDatabaseURL(fl.Field().String())
		return err == nil
	})
	return v
}

// ValidateStruct validates a struct using go-playground/validator
func ValidateStruct(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		details := make(map[string]string)

		for _, e := range validationErrors {
			details[e.Field()] = formatValidationError(e)
		}

		return errors.Validation(details)
	}
	return nil
}

func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "required_without":
		return "this field is required"
	case "min":
		return "must be at least " + e.Param()
	case "max":
		return "must be at most " + e.Param()
	case "oneof":
		return "must be one of: " + e.Param()
	case "pgident":
		return "must be a plain PostgreSQL identifier"
	case "pgurl":
		return "must be a postgres:// URL"
	default:
		return "invalid value"
	}
}
