package binder

import (
	"reflect"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/shishobooks/catalog/pkg/models"
)

var (
	dateRE = regexp.MustCompile(`^\d{4}-(0[0-9]|1[0-2])-(0[0-9]|1[0-9]|2[0-9]|3[0-1])$`)
)

// dateValidator ensures the value matches the format YYYY-MM-DD or the empty
// string. The reason the empty string is allowed is that this validator can be
// used to clear out values. However, this is only useful in that case, so if
// you're using this validator but want the value to be required, add a `ne=` to
// the validate tag so that the empty string is disallowed.
func dateValidator(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return dateRE.MatchString(value)
}

// loanStatusValidator accepts integer fields holding one of the loan status
// codes.
func loanStatusValidator(fl validator.FieldLevel) bool {
	field := fl.Field()
	//exhaustive:ignore
	switch field.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return models.LoanStatus(field.Int()).Valid()
	default:
		return false
	}
}
