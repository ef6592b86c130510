// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors produced while reading request parameters. Callers can
// match against them with [errors.Is].
var (
	// ErrInvalidID is returned when a path id is not a positive integer.
	ErrInvalidID = errors.New("invalid id in path")

	// ErrInvalidPagination is returned for a limit outside 1..100 or a
	// negative or non-numeric offset.
	ErrInvalidPagination = errors.New("invalid pagination parameters")

	// ErrNoSessionUser is returned when a protected handler runs without an
	// authenticated user in the request context.
	ErrNoSessionUser = errors.New("no session user in request context")
)
