package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var hexDigest = regexp.MustCompile(`^[0-9a-f]{16}([0-9a-f]{16})?$`)

func validateImageHash(fl validator.FieldLevel) bool {
	return hexDigest.MatchString(fl.Field().String())
}

func validateSkinGrade(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "A", "B", "C", "D":
		return true
	}
	return false
}
