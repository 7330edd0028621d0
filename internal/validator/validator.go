// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var tickerRegex = regexp.MustCompile(`^[A-Za-z0-9.\-]{1,10}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterOn(v)
	}
}

// RegisterOn adds the custom tags to v.
func RegisterOn(v *validator.Validate) {
	_ = v.RegisterValidation("ticker", validateTicker)
}

// IsTicker reports whether s looks like an exchange ticker once surrounding
// whitespace is removed.
func IsTicker(s string) bool {
	return tickerRegex.MatchString(strings.TrimSpace(s))
}

func validateTicker(fl validator.FieldLevel) bool {
	return IsTicker(fl.Field().String())
}
