// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks request payloads before they reach storage.
//
// [NewUserValidator] covers registration and sign-in payloads and
// [NewBlogValidator] covers blog and comment input. A failed check returns a
// [*FieldError] naming the field and carrying the message shown to the
// client; its Unwrap exposes one of the sentinels in errors.go.
package validators

import "context"

// Validator validates a payload. Passing field names restricts the check to
// those fields; no names means every field is checked.
type Validator interface {
	Validate(ctx context.Context, value any, fields ...string) error
}
