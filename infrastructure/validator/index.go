package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		if name == "-" {
			return ""
		}
		return name
	})
	validate.RegisterValidation("image_hash", validateImageHash)
	validate.RegisterValidation("skin_grade", validateSkinGrade)
}

type Validator struct{}

func (v *Validator) ValidateStruct(payload interface{}) *[]error {
	return validateStruct(payload)
}

func (v *Validator) ValidateValue(value any, rules string) error {
	return validateField(value, rules)
}

var ValidatorInstance = Validator{}

func validateStruct(payload interface{}) *[]error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return &[]error{err}
	}
	errs := []error{}
	for _, fieldErr := range validationErrs {
		errs = append(errs, errors.New(describe(fieldErr)))
	}
	return &errs
}

func validateField(value any, rules string) error {
	err := validate.Var(value, rules)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		return errors.New(describe(validationErrs[0]))
	}
	return err
}

func describe(fieldErr validator.FieldError) string {
	field := fieldErr.Field()
	if field == "" {
		field = "value"
	}
	field = strings.ToLower(field[:1]) + field[1:]
	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fieldErr.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fieldErr.Param())
	case "image_hash":
		return fmt.Sprintf("%s must be a 16 or 32 character hex digest", field)
	case "skin_grade":
		return fmt.Sprintf("%s must be one of A, B, C, D", field)
	default:
		return fmt.Sprintf("%s failed %s validation", field, fieldErr.Tag())
	}
}
