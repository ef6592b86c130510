package models

import "time"

// Role is the authorization level of a user.
type Role string

const (
	// RoleUser is the default role of every new account.
	RoleUser Role = "user"
	// RoleAdmin may moderate content created by other users.
	RoleAdmin Role = "admin"
)

// User represents an account entity used for authentication and authorization.
// Password users carry Username, Email and PasswordHash; users resolved by the
// external identity portal carry OpenID and may lack the other three.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the internal unique identifier of the user.
	ID int64 `json:"id"`

	// Username is the unique public handle (4-20 characters).
	Username string `json:"username"`

	// Email is the unique, normalized e-mail address.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the password. Never serialized.
	PasswordHash string `json:"-"`

	// Role is either "user" or "admin".
	Role Role `json:"role"`

	// OpenID is the identifier assigned by the external identity portal.
	OpenID string `json:"-"`

	// Name is the display name reported by the identity portal.
	Name string `json:"name,omitempty"`

	// LoginMethod is the portal login method (e.g. "email", "google").
	LoginMethod string `json:"loginMethod,omitempty"`

	// LastSignedIn is refreshed on every external sign-in.
	LastSignedIn time.Time `json:"lastSignedIn,omitzero"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user has the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Summary returns the public projection returned by login and me.
func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, Email: u.Email}
}

// UserSummary is the public view of a user sent to clients after login.
type UserSummary struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Author is the joined projection of a user attached to blogs and comments.
type Author struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// ExternalUserAttributes are the profile fields reported by the identity
// portal. Each field distinguishes "omitted" (leave as is) from "null"
// (clear) and from a concrete value.
type ExternalUserAttributes struct {
	Name         Optional[string]    `json:"name"`
	Email        Optional[string]    `json:"email"`
	LoginMethod  Optional[string]    `json:"loginMethod"`
	Role         Optional[Role]      `json:"role"`
	LastSignedIn Optional[time.Time] `json:"lastSignedIn"`
}
