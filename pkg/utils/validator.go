package utils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Registration can only fail on a programming error (empty or duplicate
	// tag), so refuse to start rather than validate with missing rules.
	if err := validate.RegisterValidation("tour_difficulty", validateTourDifficulty); err != nil {
		panic(err)
	}
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateTourDifficulty(fl validator.FieldLevel) bool {
	difficulty := fl.Field().String()
	for _, valid := range []string{"easy", "medium", "difficult"} {
		if difficulty == valid {
			return true
		}
	}
	return false
}

// FormatValidationError flattens validator output into a single message
// suitable for the client, one clause per failed field.
func FormatValidationError(err error) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return "invalid input data"
	}

	parts := make([]string, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		switch fieldError.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", strings.ToLower(fieldError.Field())))
		case "email":
			parts = append(parts, "please provide a valid email")
		case "eqfield":
			parts = append(parts, "passwords are not the same")
		case "min", "max":
			parts = append(parts, fmt.Sprintf("%s length is out of bounds", strings.ToLower(fieldError.Field())))
		default:
			parts = append(parts, fmt.Sprintf("%s is invalid", strings.ToLower(fieldError.Field())))
		}
	}
	return strings.Join(parts, ", ")
}
