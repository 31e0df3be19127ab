package handlers

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/contabilis/group_ledger_app/internal/core/domain"
)

// Account codes are dot-separated digit runs, one run per hierarchy level.
var accountCodePattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+)*$`)

// RegisterCustomValidators adds the binding tags used by the request DTOs
// to gin's validator engine. Call once before routes are registered.
func RegisterCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterValidation("accountcode", func(fl validator.FieldLevel) bool {
		return accountCodePattern.MatchString(fl.Field().String())
	})

	v.RegisterValidation("countrycode", func(fl validator.FieldLevel) bool {
		return domain.IsSupportedCountry(fl.Field().String())
	})
}
