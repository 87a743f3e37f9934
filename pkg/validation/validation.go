// Package validation wraps go-playground/validator for request payloads.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/vfg2006/property-leads-api/pkg/apiErrors"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// FieldError describes one rejected field using its JSON name.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// Error is returned when a payload fails validation.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field+" ("+f.Rule+")")
	}
	return "invalid fields: " + strings.Join(names, ", ")
}

// Has reports whether field failed with any rule, or with the given rules.
func (e *Error) Has(field string, rules ...string) bool {
	for _, f := range e.Fields {
		if f.Field != field {
			continue
		}
		if len(rules) == 0 {
			return true
		}
		for _, r := range rules {
			if f.Rule == r {
				return true
			}
		}
	}
	return false
}

// OnlyRequired reports whether every failure is a missing required field.
func (e *Error) OnlyRequired() bool {
	for _, f := range e.Fields {
		if f.Rule != "required" {
			return false
		}
	}
	return true
}

// Code maps the failure to the API error code the handlers answer with.
func (e *Error) Code() string {
	switch {
	case e.Has("email", "email"):
		return apiErrors.ErrInvalidEmail
	case e.OnlyRequired():
		return apiErrors.ErrMissingRequiredData
	default:
		return apiErrors.ErrInvalidFormat
	}
}

// Struct validates v, returning *Error for field failures.
func Struct(v any) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &Error{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field: fe.Field(),
			Rule:  fe.Tag(),
		})
	}
	return out
}

// Email validates a single address with the same rule used on payloads.
func Email(email string) bool {
	return instance().Var(email, "required,email") == nil
}
