package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/edusekai/platform-api/pkg/util"
)

// Validator wraps a shared validator instance that reports errors keyed by
// the JSON field name, so clients can annotate the matching form fields.
type Validator struct {
	validate *validator.Validate
}

// New builds the shared validator.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return &Validator{validate: v}
}

// Struct runs whole-schema validation, returning a VALIDATION_FAILED error
// with field-keyed details on failure.
func (v *Validator) Struct(s any) error {
	return v.toError(v.validate.Struct(s))
}

// StructPartial validates only the named struct fields. This is the
// advancement gate for wizard steps: each step declares its field subset and
// nothing outside it is checked.
func (v *Validator) StructPartial(s any, fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	return v.toError(v.validate.StructPartial(s, fields...))
}

func (v *Validator) toError(err error) error {
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	fields := make(map[string]any, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = messageFor(fe)
	}
	return apperrors.NewValidationError("validation failed", fields)
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be %s or more", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
