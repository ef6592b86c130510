package validators

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-blog/internal/app"
	"github.com/MKhiriev/go-blog/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	FieldUsername    = "username"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldCredentials = "credentials"
	FieldAssertion   = "assertion"
)

// Account field limits.
const (
	MinUsernameLength = 4
	MaxUsernameLength = 20
	MaxEmailLength    = 320
	MinPasswordLength = 8
	MaxPasswordBytes  = 72
)

// UserValidator validates registration and sign-in input.
type UserValidator struct{}

func NewUserValidator() Validator {
	return &UserValidator{}
}

func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegisterRequest(ctx, value, fields...)
	case *models.RegisterRequest:
		return v.validateRegisterRequest(ctx, *value, fields...)

	case models.LoginRequest:
		return v.validateLoginRequest(ctx, value, fields...)
	case *models.LoginRequest:
		return v.validateLoginRequest(ctx, *value, fields...)

	case models.ExternalSignInRequest:
		return v.validateExternalSignInRequest(ctx, value, fields...)
	case *models.ExternalSignInRequest:
		return v.validateExternalSignInRequest(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// NormalizeEmail trims surrounding whitespace and lower-cases the address.
// Emails are stored and looked up in this form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (v *UserValidator) validateRegisterRequest(_ context.Context, request models.RegisterRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldUsername:
			n := utf8.RuneCountInString(request.Username)
			if n < MinUsernameLength || n > MaxUsernameLength {
				return newFieldError(FieldUsername, app.MsgInvalidUsername, ErrInvalidUsername)
			}
		case FieldEmail:
			if !isValidEmail(NormalizeEmail(request.Email)) {
				return newFieldError(FieldEmail, app.MsgInvalidEmail, ErrInvalidEmail)
			}
		case FieldPassword:
			if utf8.RuneCountInString(request.Password) < MinPasswordLength {
				return newFieldError(FieldPassword, app.MsgPasswordTooShort, ErrPasswordTooShort)
			}
			if len(request.Password) > MaxPasswordBytes {
				return newFieldError(FieldPassword, app.MsgPasswordTooLong, ErrPasswordTooLong)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *UserValidator) validateLoginRequest(_ context.Context, request models.LoginRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldCredentials}
	}

	for _, f := range fields {
		switch f {
		case FieldCredentials:
			if strings.TrimSpace(request.Email) == "" || request.Password == "" {
				return newFieldError(FieldCredentials, app.MsgEmailPasswordRequired, ErrCredentialsRequired)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *UserValidator) validateExternalSignInRequest(_ context.Context, request models.ExternalSignInRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldAssertion}
	}

	for _, f := range fields {
		switch f {
		case FieldAssertion:
			if strings.TrimSpace(request.Assertion) == "" {
				return newFieldError(FieldAssertion, app.MsgAssertionRequired, ErrAssertionRequired)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// isValidEmail accepts a normalized address with a non-empty local part and
// domain around a single "@".
func isValidEmail(email string) bool {
	if email == "" || len(email) > MaxEmailLength || strings.ContainsAny(email, " \t\r\n") {
		return false
	}

	local, domain, found := strings.Cut(email, "@")
	return found && local != "" && domain != "" && !strings.Contains(domain, "@")
}
