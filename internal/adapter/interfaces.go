// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides a client for the blog HTTP API.
//
// The primary abstraction is [BlogAPI]. The HTTP implementation
// ([NewHTTPBlogAPI]) keeps the session cookie issued by the server in a
// cookie jar, so every call after a successful Login or ExternalSignIn is
// made as the signed-in user until Logout.
//
// Non-2xx responses are mapped by mapHTTPError to the sentinel values in
// errors.go, so callers can use [errors.Is] (e.g. [ErrUnauthorized] for 401,
// [ErrForbidden] for 403). The server's error message is kept in the wrapped
// error text.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-blog/models"
)

// BlogAPI is the client-side view of the blog server.
type BlogAPI interface {
	// Register creates an account. It does not start a session.
	Register(ctx context.Context, request models.RegisterRequest) error

	// Login exchanges email and password for a session cookie and returns
	// the signed-in user.
	Login(ctx context.Context, request models.LoginRequest) (models.UserSummary, error)

	// ExternalSignIn exchanges an identity portal assertion for a session
	// cookie.
	ExternalSignIn(ctx context.Context, assertion string) (models.UserSummary, error)

	// Logout clears the session cookie.
	Logout(ctx context.Context) error

	// Me returns the session user, or nil when the client is anonymous.
	Me(ctx context.Context) (*models.UserSummary, error)

	ListBlogs(ctx context.Context, query models.BlogQuery) ([]models.Blog, error)
	GetBlog(ctx context.Context, id int64) (models.Blog, error)
	CreateBlog(ctx context.Context, input models.BlogInput) (models.Blog, error)
	UpdateBlog(ctx context.Context, id int64, update models.BlogUpdate) (models.Blog, error)
	DeleteBlog(ctx context.Context, id int64) error

	ListComments(ctx context.Context, blogID int64) ([]models.Comment, error)
	CreateComment(ctx context.Context, blogID int64, input models.CommentInput) (models.Comment, error)
	DeleteComment(ctx context.Context, id int64) error

	// Version returns the server version string.
	Version(ctx context.Context) (string, error)
}
