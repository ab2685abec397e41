// Package validation binds request data and validates it.
//
// Struct tags handled by go-playground/validator cover most rules;
// request types add cross-field rules through CustomValidationErrors.
// Either way the client receives a 400 with field-level details.
package validation

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	instance *validator.Validate
)

// Validator returns the shared validator. Field names in errors use the
// json tag so they match what clients send.
func Validator() *validator.Validate {
	once.Do(func() {
		instance = validator.New()
		instance.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return instance
}

// Struct validates s against its validate tags.
func Struct(s any) error {
	return Validator().Struct(s)
}
