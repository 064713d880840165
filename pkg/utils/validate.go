package utils

import "github.com/go-playground/validator/v10"

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateStruct runs the validator tags declared on a request DTO.
func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}
