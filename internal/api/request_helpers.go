package api

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/nanobanana-callback/internal/domain"
)

// newValidator returns a validator that reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateRequest runs struct validation and converts the first failure into
// a domain.ValidationError, e.g. "taskId is required".
func validateRequest(v *validator.Validate, req interface{}) error {
	err := v.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return domain.NewValidationError("request", "is invalid", domain.ErrValidation)
	}

	fe := fieldErrs[0]
	return domain.NewValidationError(fe.Field(), validationTagMessage(fe.Tag()), domain.ErrValidation)
}

// validationTagMessage maps validation tags to user-friendly error messages
func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "is required"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "has an invalid value"
	default:
		return "is invalid"
	}
}
