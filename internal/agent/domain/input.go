package domain

import (
	validation "github.com/jellydator/validation"

	appValidation "github.com/allisson/fieldguard/internal/validation"
)

// EnrollInput holds the plaintext fields of a new agent.
type EnrollInput struct {
	NIN       string
	Email     string
	Phone     string
	FirstName string
	LastName  string
	State     string
	LGA       string
	Address   string
	Password  string
}

// Validate checks field formats. Errors wrap ErrInvalidInput.
func (i *EnrollInput) Validate() error {
	err := validation.ValidateStruct(i,
		validation.Field(&i.NIN, validation.Required, appValidation.NIN),
		validation.Field(&i.Email, validation.Required, appValidation.Email, validation.Length(5, 255)),
		validation.Field(&i.Phone, validation.Required, appValidation.Phone),
		validation.Field(&i.FirstName, validation.Required, appValidation.NotBlank, validation.Length(1, 100)),
		validation.Field(&i.LastName, validation.Required, appValidation.NotBlank, validation.Length(1, 100)),
		validation.Field(&i.State, validation.Required, appValidation.NotBlank, validation.Length(1, 100)),
		validation.Field(&i.LGA, validation.Required, appValidation.NotBlank, validation.Length(1, 100)),
		validation.Field(&i.Address, validation.Length(0, 500)),
		validation.Field(&i.Password, validation.Required, appValidation.DefaultPasswordStrength),
	)
	return appValidation.WrapValidationError(err)
}

// UpdateProfileInput holds the profile fields to change. Nil fields are left as they are.
// The NIN and credentials cannot be changed through a profile update.
type UpdateProfileInput struct {
	Email     *string
	Phone     *string
	FirstName *string
	LastName  *string
	State     *string
	LGA       *string
	Address   *string
}

// Validate checks the formats of the fields being changed.
func (i *UpdateProfileInput) Validate() error {
	err := validation.ValidateStruct(i,
		validation.Field(&i.Email, validation.NilOrNotEmpty, appValidation.Email, validation.Length(5, 255)),
		validation.Field(&i.Phone, validation.NilOrNotEmpty, appValidation.Phone),
		validation.Field(&i.FirstName, validation.NilOrNotEmpty, appValidation.NotBlank, validation.Length(1, 100)),
		validation.Field(&i.LastName, validation.NilOrNotEmpty, appValidation.NotBlank, validation.Length(1, 100)),
		validation.Field(&i.State, validation.NilOrNotEmpty, appValidation.NotBlank, validation.Length(1, 100)),
		validation.Field(&i.LGA, validation.NilOrNotEmpty, appValidation.NotBlank, validation.Length(1, 100)),
		validation.Field(&i.Address, validation.Length(0, 500)),
	)
	return appValidation.WrapValidationError(err)
}

// IsEmpty reports whether the update changes nothing.
func (i *UpdateProfileInput) IsEmpty() bool {
	return i.Email == nil && i.Phone == nil && i.FirstName == nil && i.LastName == nil &&
		i.State == nil && i.LGA == nil && i.Address == nil
}

// ValidatePIN checks the format of a transaction PIN.
func ValidatePIN(pin string) error {
	err := validation.Validate(pin, validation.Required, appValidation.PIN)
	if err != nil {
		return appValidation.WrapValidationError(validation.Errors{"pin": err})
	}
	return nil
}
