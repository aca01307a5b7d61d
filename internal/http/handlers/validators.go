package handlers

import (
	"reflect"
	"regexp"
	"sync"

	"github.com/geocoder89/bankportal/internal/domain/banking"
	"github.com/geocoder89/bankportal/internal/domain/session"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	pinPattern   = regexp.MustCompile(`^[0-9]{4,6}$`)
	registerOnce sync.Once
)

// RegisterValidators installs the banking rules on gin's validator. Safe to
// call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		// Money is validated by its numeric value so gt/gte work on it.
		v.RegisterCustomTypeFunc(moneyValue, banking.Money{})

		_ = v.RegisterValidation("pin", func(fl validator.FieldLevel) bool {
			return pinPattern.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
			return session.ParseRole(fl.Field().String()).IsValid()
		})
		_ = v.RegisterValidation("accounttype", func(fl validator.FieldLevel) bool {
			return banking.AccountType(fl.Field().String()).IsValid()
		})
	})
}

func moneyValue(field reflect.Value) interface{} {
	m, ok := field.Interface().(banking.Money)
	if !ok {
		return nil
	}
	f, _ := m.Float64()
	return f
}
