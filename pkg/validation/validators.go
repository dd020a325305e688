package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// Optional +, then digits with common separators, 3-20 characters
	phoneRegex = regexp.MustCompile(`^\+?[0-9 ()-]{3,20}$`)
)

// ProjectStatuses lists the values accepted by the project_status validator
var ProjectStatuses = []string{"active", "completed", "cancelled"}

// New returns a validator configured with JSON field names and custom rules
func New() *validator.Validate {
	v := validator.New()
	Configure(v)
	return v
}

// Configure applies the shared setup to an existing validator, e.g. gin's binding engine
func Configure(v *validator.Validate) {
	v.RegisterTagNameFunc(jsonFieldName)
	_ = v.RegisterValidation("valid_phone", ValidPhone)
	_ = v.RegisterValidation("project_status", ProjectStatus)
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// ValidPhone validates a phone number structure
func ValidPhone(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use required if needed
	}
	return phoneRegex.MatchString(val)
}

// ProjectStatus accepts empty (defaulted later) or one of ProjectStatuses
func ProjectStatus(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	for _, s := range ProjectStatuses {
		if s == val {
			return true
		}
	}
	return false
}
