package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUsername     = errors.New("invalid username")
	ErrInvalidEmail        = errors.New("invalid email")
	ErrPasswordTooShort    = errors.New("password is too short")
	ErrPasswordTooLong     = errors.New("password is too long")
	ErrCredentialsRequired = errors.New("email and password are required")
	ErrAssertionRequired   = errors.New("assertion is required")
	ErrInvalidTitle        = errors.New("invalid title")
	ErrEmptyContent        = errors.New("content is required")
	ErrNoFieldsToUpdate    = errors.New("at least one field must be provided for update")
	ErrInvalidLimit        = errors.New("invalid limit")
)

// FieldError reports which input field failed validation. Message is the
// user-facing text; Err is one of the sentinels above for errors.Is checks.
type FieldError struct {
	Field   string
	Message string
	Err     error
}

func newFieldError(field, message string, err error) *FieldError {
	return &FieldError{Field: field, Message: message, Err: err}
}

// Error returns the user-facing message.
func (e *FieldError) Error() string {
	return e.Message
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
