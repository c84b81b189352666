package utils

import "github.com/go-playground/validator/v10"

// Validator adapta o go-playground/validator para a interface echo.Validator.
type Validator struct {
	validator *validator.Validate
}

func NewValidator(v *validator.Validate) *Validator {
	return &Validator{validator: v}
}

func (v *Validator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}
