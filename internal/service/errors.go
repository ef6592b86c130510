package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrUsernameTaken          = errors.New("username already taken")
	ErrUserAlreadyExists      = errors.New("user already exists")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthenticated    = errors.New("unauthenticated")

	ErrTokenCreationFailed = errors.New("token creation failed")
	ErrTokenIsInvalid      = errors.New("token is invalid")
	ErrTokenIsExpired      = errors.New("token is expired")

	ErrUnauthorizedAccess = errors.New("unauthorized access to resource")

	ErrBlogNotFound    = errors.New("blog not found")
	ErrCommentNotFound = errors.New("comment not found")

	ErrTimeout = errors.New("operation timed out")

	ErrVersionIsNotSpecified   = errors.New("app version is not specified")
	ErrUnsupportedIdentityMode = errors.New("unsupported identity mode")
)
