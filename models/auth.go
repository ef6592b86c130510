package models

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ExternalSignInRequest is the body of POST /api/auth/external.
type ExternalSignInRequest struct {
	// Assertion is the signed identity assertion handed over by the portal.
	Assertion string `json:"assertion"`
}

// Credentials is what an identity provider resolves into a user. Password
// providers read Email and Password, the external provider reads Assertion.
type Credentials struct {
	Email     string
	Password  string
	Assertion string
}

// MessageResponse is the success body of state-changing endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// LoginResponse is returned after a session has been issued.
type LoginResponse struct {
	Message string      `json:"message"`
	User    UserSummary `json:"user"`
}
