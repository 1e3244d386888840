// Package validation checks user input at the presentation boundary before it
// reaches the derivation core.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/tartampluch/go-numerology/internal/config"
	"github.com/tartampluch/go-numerology/internal/numerology"
)

// Validator wraps the go-playground validator with the date rule registered.
type Validator struct {
	validate *validator.Validate
}

// New creates a validator with the custom rules.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// DD.MM.YYYY without any calendar check.
	_ = v.RegisterValidation(config.TagDate, func(fl validator.FieldLevel) bool {
		return numerology.ValidDateText(fl.Field().String())
	})

	// Report JSON field names in errors.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Struct validates s and returns a *Error describing every failed field.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	return newError(verrs)
}

// Date validates a single DD.MM.YYYY value.
func (v *Validator) Date(value string) error {
	if err := v.validate.Var(value, config.TagDate); err != nil {
		return fmt.Errorf("%w: %q", numerology.ErrInvalidDateFormat, value)
	}
	return nil
}

// Error lists failed fields with a technical message each.
// It matches numerology.ErrInvalidDateFormat when a date field failed.
type Error struct {
	Fields     map[string]string `json:"fields"`
	dateFormat bool
}

// newError maps validator tags to messages. The field names are the json tags.
func newError(errs validator.ValidationErrors) *Error {
	e := &Error{Fields: make(map[string]string, len(errs))}

	for _, fe := range errs {
		field := fe.Field()
		switch fe.Tag() {
		case config.TagDate:
			e.dateFormat = true
			e.Fields[field] = config.ErrDateFormat
		case "required":
			e.Fields[field] = fmt.Sprintf(config.FormatFieldRequired, field)
		case "max":
			e.Fields[field] = fmt.Sprintf(config.FormatFieldTooLong, field, fe.Param())
		default:
			e.Fields[field] = fmt.Sprintf(config.FormatFieldInvalid, field)
		}
	}
	return e
}

// Error implements the error interface with a stable field order.
func (e *Error) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f + ": " + e.Fields[f]
	}
	return config.ErrValidation + ": " + strings.Join(parts, ", ")
}

// Unwrap exposes the core date error so callers can use errors.Is.
func (e *Error) Unwrap() error {
	if e.dateFormat {
		return numerology.ErrInvalidDateFormat
	}
	return nil
}
