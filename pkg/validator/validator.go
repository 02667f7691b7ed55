package validator

import (
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()
	// Report the HTML form field name instead of the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return &CustomValidator{
		validator: v,
	}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			label := humanize(field)
			switch e.Tag() {
			case "required":
				errors[field] = label + " is required"
			case "min":
				errors[field] = label + " must be at least " + e.Param() + " characters"
			case "max":
				errors[field] = label + " must be at most " + e.Param() + " characters"
			case "gte":
				errors[field] = label + " must be greater than or equal to " + e.Param()
			case "lte":
				errors[field] = label + " must be less than or equal to " + e.Param()
			case "oneof":
				errors[field] = label + " must be one of " + strings.ReplaceAll(e.Param(), " ", ", ")
			case "numeric":
				errors[field] = label + " must contain only digits"
			default:
				errors[field] = label + " is invalid"
			}
		}
	}

	return errors
}

// FormatValidationMessage flattens the validation errors into one flash-ready sentence,
// ordered by field name so the output is stable.
func (cv *CustomValidator) FormatValidationMessage(err error) string {
	errs := cv.FormatValidationErrors(err)
	if len(errs) == 0 {
		return "Invalid input"
	}
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, field := range fields {
		msgs = append(msgs, errs[field])
	}
	return strings.Join(msgs, "; ")
}

func humanize(field string) string {
	field = strings.ReplaceAll(field, "_", " ")
	if field == "" {
		return field
	}
	return strings.ToUpper(field[:1]) + field[1:]
}
