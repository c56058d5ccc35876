// Package validator
package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Validator interface {
	Validate(v any) map[string]string
}

type StructValidator struct {
	validate *validator.Validate
}

func New() *StructValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return strings.ToLower(f.Name)
		}
		return name
	})

	return &StructValidator{validate: v}
}

// Validate returns one message per failing field keyed by its JSON name, or
// nil when v is valid.
func (sv *StructValidator) Validate(v any) map[string]string {
	err := sv.validate.Struct(v)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errors["_"] = err.Error()
		return errors
	}

	for _, fe := range validationErrors {
		field := fe.Field()
		label := strings.ReplaceAll(field, "_", " ")

		switch fe.Tag() {
		case "required":
			errors[field] = fmt.Sprintf("The %s field is required.", label)
		case "email":
			errors[field] = fmt.Sprintf("The %s must be a valid email address.", label)
		case "min":
			errors[field] = fmt.Sprintf("The %s must be at least %s characters.", label, fe.Param())
		case "gt":
			errors[field] = fmt.Sprintf("The %s must be greater than %s.", label, fe.Param())
		case "eqfield":
			errors[field] = fmt.Sprintf("The %s field must match %s.", label, strings.ToLower(fe.Param()))
		default:
			errors[field] = fmt.Sprintf("The %s field is invalid.", label)
		}
	}

	return errors
}
