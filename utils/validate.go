package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs struct tag validation and flattens the result into
// per-field messages suitable for a JSON error payload.
func ValidateStruct(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	out := make(map[string]string)
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		out["_"] = err.Error()
		return out
	}
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			out[field] = "is required"
		case "min":
			out[field] = "is too short (min " + fe.Param() + ")"
		case "max":
			out[field] = "is too long (max " + fe.Param() + ")"
		case "email":
			out[field] = "must be a valid email address"
		case "oneof":
			out[field] = "must be one of: " + fe.Param()
		default:
			out[field] = "is invalid (" + fe.Tag() + ")"
		}
	}
	return out
}
