package binder

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"github.com/segmentio/encoding/json"
	"github.com/shishobooks/catalog/pkg/models"
)

const (
	date     = "date"
	loan     = "loanstatus"
	mx       = "max"
	mn       = "min"
	oneof    = "oneof"
	required = "required"
	uuidTag  = "uuid"
)

func formatUnmarshalTypeError(err *json.UnmarshalTypeError) string {
	return fmt.Sprintf("%q should be of type %s", strings.Trim(err.Field, "."), err.Type)
}

func formatSchemaConversionError(err schema.ConversionError) string {
	return fmt.Sprintf("%q should be of type %s", err.Key, err.Type)
}

func formatValidationError(err validator.FieldError) string {
	field := err.Field()

	switch err.Tag() {
	case date:
		return fmt.Sprintf("%q should be in the format of YYYY-MM-DD", field)
	case loan:
		return fmt.Sprintf("%q must be one of the following: %s", field, loanStatusChoices())
	case mx:
		return formatBound(field, "less", err)
	case mn:
		return formatBound(field, "greater", err)
	case oneof:
		valids := []string{}
		for _, p := range strings.Fields(err.Param()) {
			valids = append(valids, fmt.Sprintf("%q", p))
		}
		return fmt.Sprintf("%q must be one of the following: %s", field, strings.Join(valids, ", "))
	case required:
		return fmt.Sprintf("%q is required", field)
	case uuidTag:
		return fmt.Sprintf("%q is not a valid UUID", field)
	default:
		return fmt.Sprintf("%q is invalid (%s)", field, err.Tag())
	}
}

// formatBound words min/max failures by kind: numbers compare by value,
// strings and slices by length.
func formatBound(field, direction string, err validator.FieldError) string {
	//exhaustive:ignore
	switch err.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return fmt.Sprintf("%q must be %s than or equal to %s", field, direction, err.Param())
	case reflect.Slice:
		return fmt.Sprintf("%q length must be %s than or equal to %s %s", field, direction, err.Param(), plural("element", err.Param()))
	default:
		return fmt.Sprintf("%q length must be %s than or equal to %s %s", field, direction, err.Param(), plural("character", err.Param()))
	}
}

func plural(noun, count string) string {
	if count == "1" {
		return noun
	}
	return noun + "s"
}

// loanStatusChoices renders "0 (available), 1 (reserved), ...".
func loanStatusChoices() string {
	choices := make([]string, len(models.LoanStatuses))
	for i, s := range models.LoanStatuses {
		choices[i] = fmt.Sprintf("%d (%s)", int(s), s)
	}
	return strings.Join(choices, ", ")
}
