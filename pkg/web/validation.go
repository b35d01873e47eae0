package web

import "github.com/go-playground/validator/v10"

// ValidationMsg renders the first field error of a binding failure as a
// user-facing message.
func ValidationMsg(ve validator.ValidationErrors) string {
	field := ve[0]

	switch field.Tag() {
	case "required":
		return field.Field() + " is required"
	case "email":
		return field.Field() + " must be a valid email"
	case "min":
		return field.Field() + " must be at least " + field.Param() + " characters"
	case "len":
		return field.Field() + " must be exactly " + field.Param() + " characters"
	case "numeric":
		return field.Field() + " must contain only numbers"
	case "oneof":
		return field.Field() + " must be one of: " + field.Param()
	}

	return field.Field() + " is invalid"
}
