// Package dto provides data transfer objects for the agent HTTP API.
package dto

import (
	validation "github.com/jellydator/validation"

	agentDomain "github.com/allisson/fieldguard/internal/agent/domain"
	appValidation "github.com/allisson/fieldguard/internal/validation"
)

// EnrollAgentRequest is the body of POST /v1/agents.
type EnrollAgentRequest struct {
	NIN       string `json:"nin"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	State     string `json:"state"`
	LGA       string `json:"lga"`
	Address   string `json:"address"`
	Password  string `json:"password"` //nolint:gosec // hashed before storage
}

// Validate checks presence and format; the use case repeats the format checks.
func (r *EnrollAgentRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.NIN, validation.Required, appValidation.NIN),
		validation.Field(&r.Email, validation.Required, appValidation.Email),
		validation.Field(&r.Phone, validation.Required, appValidation.Phone),
		validation.Field(&r.FirstName, validation.Required, appValidation.NotBlank),
		validation.Field(&r.LastName, validation.Required, appValidation.NotBlank),
		validation.Field(&r.State, validation.Required, appValidation.NotBlank),
		validation.Field(&r.LGA, validation.Required, appValidation.NotBlank),
		validation.Field(&r.Password, validation.Required),
	)
}

// ToEnrollInput converts the request to use case input.
func (r *EnrollAgentRequest) ToEnrollInput() *agentDomain.EnrollInput {
	return &agentDomain.EnrollInput{
		NIN:       r.NIN,
		Email:     r.Email,
		Phone:     r.Phone,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		State:     r.State,
		LGA:       r.LGA,
		Address:   r.Address,
		Password:  r.Password,
	}
}

// UpdateProfileRequest is the body of PUT /v1/agents/:id. Omitted fields are unchanged.
type UpdateProfileRequest struct {
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	State     *string `json:"state"`
	LGA       *string `json:"lga"`
	Address   *string `json:"address"`
}

// Validate checks the formats of the fields present.
func (r *UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validation.NilOrNotEmpty, appValidation.Email),
		validation.Field(&r.Phone, validation.NilOrNotEmpty, appValidation.Phone),
		validation.Field(&r.FirstName, validation.NilOrNotEmpty, appValidation.NotBlank),
		validation.Field(&r.LastName, validation.NilOrNotEmpty, appValidation.NotBlank),
		validation.Field(&r.State, validation.NilOrNotEmpty, appValidation.NotBlank),
		validation.Field(&r.LGA, validation.NilOrNotEmpty, appValidation.NotBlank),
	)
}

// ToUpdateProfileInput converts the request to use case input.
func (r *UpdateProfileRequest) ToUpdateProfileInput() *agentDomain.UpdateProfileInput {
	return &agentDomain.UpdateProfileInput{
		Email:     r.Email,
		Phone:     r.Phone,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		State:     r.State,
		LGA:       r.LGA,
		Address:   r.Address,
	}
}

// SetPINRequest is the body of PUT /v1/agents/:id/pin. CurrentPIN is empty for the first PIN.
type SetPINRequest struct {
	CurrentPIN string `json:"current_pin"`
	NewPIN     string `json:"new_pin"`
}

// Validate checks the new PIN format.
func (r *SetPINRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.NewPIN, validation.Required, appValidation.PIN),
	)
}

// VerifyPINRequest is the body of POST /v1/agents/:id/pin/verify.
type VerifyPINRequest struct {
	PIN string `json:"pin"`
}

// Validate checks that a PIN was sent.
func (r *VerifyPINRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.PIN, validation.Required),
	)
}

// VerifyCredentialsRequest is the body of POST /v1/agents/verify-credentials.
type VerifyCredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"` //nolint:gosec // compared against a hash
}

// Validate checks that both credentials were sent.
func (r *VerifyCredentialsRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}
