package utils

import (
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func InitValidator() {
	Validate = validator.New()
	Validate.RegisterValidation("label", ValidateLabelRule)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("label", ValidateLabelRule)
	}
}

func ValidateLabelRule(fl validator.FieldLevel) bool {
	return ValidateLabel(fl.Field().String())
}

// ValidateLabel checks theme/template labels: letters, digits,
// dashes and underscores only. Empty values pass through omitempty.
func ValidateLabel(label string) bool {
	for _, char := range label {
		switch {
		case unicode.IsLetter(char) || unicode.IsDigit(char):
		case char == '-' || char == '_':
		default:
			return false
		}
	}
	return true
}
