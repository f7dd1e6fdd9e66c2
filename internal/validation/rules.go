// Package validation provides jellydator/validation rules for agent enrollment input.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/fieldguard/internal/errors"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	ninRegex   = regexp.MustCompile(`^[0-9]{11}$`)
	pinRegex   = regexp.MustCompile(`^[0-9]{4,6}$`)
	// Local (0XXXXXXXXXX) or international (+XXXXXXXXXXXX) numbers, separators allowed.
	phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9 ()\-]{8,18}[0-9]$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// PasswordStrength validates password complexity.
type PasswordStrength struct {
	MinLength      int
	MaxLength      int // 0 means unbounded
	RequireUpper   bool
	RequireLower   bool
	RequireNumber  bool
	RequireSpecial bool
}

// DefaultPasswordStrength is the policy applied to agent passwords.
var DefaultPasswordStrength = PasswordStrength{
	MinLength:     8,
	MaxLength:     72,
	RequireUpper:  true,
	RequireLower:  true,
	RequireNumber: true,
}

// Validate implements validation.Rule.
func (p PasswordStrength) Validate(value any) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_password_strength", "password must be a string")
	}
	if s == "" {
		return nil
	}

	if len(s) < p.MinLength {
		return validation.NewError(
			"validation_password_min_length",
			fmt.Sprintf("password must be at least %d characters", p.MinLength),
		)
	}
	if p.MaxLength > 0 && len(s) > p.MaxLength {
		return validation.NewError(
			"validation_password_max_length",
			fmt.Sprintf("password must be at most %d bytes", p.MaxLength),
		)
	}

	checks := []struct {
		required bool
		has      func(rune) bool
		code     string
		message  string
	}{
		{p.RequireUpper, unicode.IsUpper, "validation_password_uppercase", "password must contain at least one uppercase letter"},
		{p.RequireLower, unicode.IsLower, "validation_password_lowercase", "password must contain at least one lowercase letter"},
		{p.RequireNumber, unicode.IsNumber, "validation_password_number", "password must contain at least one number"},
		{p.RequireSpecial, isSpecial, "validation_password_special", "password must contain at least one special character"},
	}
	for _, c := range checks {
		if c.required && !strings.ContainsFunc(s, c.has) {
			return validation.NewError(c.code, c.message)
		}
	}

	return nil
}

func isSpecial(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

// Email validates email format.
var Email = validation.NewStringRuleWithError(
	func(s string) bool {
		return emailRegex.MatchString(strings.TrimSpace(s))
	},
	validation.NewError("validation_email_format", "must be a valid email address"),
)

// NIN validates an 11-digit national identification number.
var NIN = validation.NewStringRuleWithError(
	ninRegex.MatchString,
	validation.NewError("validation_nin_format", "must be an 11-digit national identification number"),
)

// Phone validates a local or international phone number.
var Phone = validation.NewStringRuleWithError(
	func(s string) bool {
		return phoneRegex.MatchString(strings.TrimSpace(s))
	},
	validation.NewError("validation_phone_format", "must be a valid phone number"),
)

// PIN validates a 4 to 6 digit transaction PIN.
var PIN = validation.NewStringRuleWithError(
	pinRegex.MatchString,
	validation.NewError("validation_pin_format", "must be 4 to 6 digits"),
)

// NotBlank validates that a string is not empty after trimming whitespace.
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)
