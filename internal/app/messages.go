// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// blog server handlers, validators and the API client.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies to describe the outcome of an operation. Keeping them
// in one place ensures consistent wording throughout the API.
package app

// Success messages.
const (
	MsgUserRegistered = "User registered successfully"
	MsgLoginSuccess   = "Login successful"
	MsgLogoutSuccess  = "Logout successful"
	MsgBlogDeleted    = "Blog deleted successfully"
	MsgCommentDeleted = "Comment deleted successfully"
)

// Validation messages.
const (
	MsgInvalidUsername       = "Username must be between 4-20 characters"
	MsgInvalidEmail          = "Invalid email"
	MsgPasswordTooShort      = "Password must be at least 8 characters"
	MsgPasswordTooLong       = "Password must be at most 72 bytes"
	MsgEmailPasswordRequired = "Email and password are required"
	MsgAssertionRequired     = "Assertion is required"
	MsgInvalidTitle          = "Title must be between 1-255 characters"
	MsgContentRequired       = "Content is required"
	MsgNothingToUpdate       = "Title or content must be provided"
	MsgInvalidPagination     = "Limit must be between 1-100"
	MsgInvalidID             = "Invalid id"
)

// Error messages.
const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded.
	MsgInvalidDataProvided = "Invalid data provided"

	// MsgInvalidCredentials is returned for both an unknown email and a wrong
	// password, so the response does not reveal which accounts exist.
	MsgInvalidCredentials = "Invalid email or password"

	MsgEmailAlreadyRegistered = "Email already registered"
	MsgUsernameTaken          = "Username already taken"

	MsgRegistrationFailed = "Registration failed"
	MsgLoginFailed        = "Login failed"

	// MsgUnauthenticated is returned when a route requires a session and the
	// request carries none, or an invalid or expired one.
	MsgUnauthenticated = "Please login"

	// MsgForbidden is returned when the session user does not own the
	// resource being changed.
	MsgForbidden = "You do not have permission to perform this action"

	MsgBlogNotFound    = "Blog not found"
	MsgCommentNotFound = "Comment not found"
	MsgNotFound        = "Not found"

	// MsgServiceUnavailable is returned when an operation hit its deadline.
	MsgServiceUnavailable = "Service temporarily unavailable"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "Internal server error"
)
