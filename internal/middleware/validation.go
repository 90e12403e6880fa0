package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/madarij/center/internal/pkg/validation"
)

// RegisterValidators adds the phone, hhmm and weekday tags to gin's validator
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return registerRules(v)
}

func registerRules(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"phone": func(fl validator.FieldLevel) bool {
			return validation.IsPhone(fl.Field().String())
		},
		"hhmm": func(fl validator.FieldLevel) bool {
			return validation.IsClock(fl.Field().String())
		},
		"weekday": func(fl validator.FieldLevel) bool {
			return validation.IsWeekday(fl.Field().String())
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s validator: %w", tag, err)
		}
	}
	return nil
}
