package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Validator collects field errors keyed by the request field name.
type Validator struct {
	Errors map[string]string
}

// New creates a new validator
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid checks if there are any validation errors
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError records message for field unless the field already has one.
func (v *Validator) AddError(field, message string) {
	if _, exists := v.Errors[field]; !exists {
		v.Errors[field] = message
	}
}

// Check adds an error if the condition is false
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// Error joins the collected messages in field order.
func (v *Validator) Error() string {
	fields := make([]string, 0, len(v.Errors))
	for field := range v.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, len(fields))
	for i, field := range fields {
		parts[i] = fmt.Sprintf("%s: %s", field, v.Errors[field])
	}
	return strings.Join(parts, "; ")
}

var (
	structValidator *validator.Validate
	initOnce        sync.Once
)

func instance() *validator.Validate {
	initOnce.Do(func() {
		vld := validator.New(validator.WithRequiredStructEnabled())
		vld.RegisterTagNameFunc(tagName)
		registerCustom(vld)
		structValidator = vld
	})
	return structValidator
}

// tagName reports fields by their json or query name.
func tagName(fld reflect.StructField) string {
	for _, key := range []string{"json", "query"} {
		name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// Struct runs the tag rules of payload and records every failing field.
func (v *Validator) Struct(payload interface{}) {
	err := instance().Struct(payload)
	if err == nil {
		return
	}
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		v.AddError("request", err.Error())
		return
	}
	for _, fe := range fieldErrors {
		v.AddError(fe.Field(), message(fe))
	}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case tagMoney:
		return fmt.Sprintf("must be a positive amount of at least %s with at most %d decimal places", MinAmount.String(), AmountScale)
	case tagTimestamp:
		return "must be an ISO 8601 date or timestamp"
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}
