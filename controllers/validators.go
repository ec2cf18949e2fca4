package controllers

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	mobileRegex  = regexp.MustCompile(`^\d{10}$`)
	pincodeRegex = regexp.MustCompile(`^\d{6}$`)
)

// RegisterCustomValidators adds the Indian mobile-number and pincode rules to
// gin's binding engine. Must run before the first request is bound.
func RegisterCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterValidation("mobile", func(fl validator.FieldLevel) bool {
		return mobileRegex.MatchString(fl.Field().String())
	})
	v.RegisterValidation("pincode", func(fl validator.FieldLevel) bool {
		return pincodeRegex.MatchString(fl.Field().String())
	})
}
