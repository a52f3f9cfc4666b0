package authstore

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type credentialsInput struct {
	Email    string
	Password string
}

func (r credentialsInput) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, validation.Length(3, 320), is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

type registerInput struct {
	Email string
	Name  string
}

func (r registerInput) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, validation.Length(3, 320), is.Email),
		validation.Field(&r.Name, validation.Length(0, 200)),
	)
}

type otpInput struct {
	Email string
	Code  string
}

func (r otpInput) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, validation.Length(3, 320), is.Email),
		validation.Field(&r.Code, validation.Required, validation.Length(4, 12), is.Digit),
	)
}

func validate(input validation.Validatable) error {
	if err := input.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}
