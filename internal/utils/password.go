// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

var (
	// ErrInvalidHashCost is returned by NewPasswordHasher for a cost outside
	// bcrypt's supported range.
	ErrInvalidHashCost = errors.New("invalid bcrypt cost")
	// ErrPasswordTooLong is returned for passwords above MaxPasswordBytes.
	ErrPasswordTooLong = errors.New("password is longer than 72 bytes")
)

// PasswordHasher hashes and verifies passwords with bcrypt.
//
// Both operations are CPU-bound; they run on a separate goroutine so that a
// cancelled or expired context releases the caller immediately. The
// abandoned computation finishes in the background and its result is
// dropped.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a hasher using the given bcrypt work factor.
func NewPasswordHasher(cost int) (*PasswordHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("%w: %d", ErrInvalidHashCost, cost)
	}

	return &PasswordHasher{cost: cost}, nil
}

// Hash returns a bcrypt hash of plaintext with a fresh random salt.
func (h *PasswordHasher) Hash(ctx context.Context, plaintext string) (string, error) {
	if len(plaintext) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}

	return runBounded(ctx, func() (string, error) {
		hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
		if err != nil {
			return "", fmt.Errorf("error hashing password: %w", err)
		}
		return string(hash), nil
	})
}

// Verify reports whether plaintext matches hash. A mismatch is (false, nil);
// an error means the comparison itself could not be made (malformed hash,
// context ended).
func (h *PasswordHasher) Verify(ctx context.Context, plaintext, hash string) (bool, error) {
	return runBounded(ctx, func() (bool, error) {
		err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
		switch {
		case err == nil:
			return true, nil
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, fmt.Errorf("error comparing password hash: %w", err)
		}
	})
}

// Cost returns the configured work factor.
func (h *PasswordHasher) Cost() int {
	return h.cost
}

func runBounded[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	type result struct {
		value T
		err   error
	}

	done := make(chan result, 1)
	go func() {
		v, err := fn()
		done <- result{value: v, err: err}
	}()

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case r := <-done:
		return r.value, r.err
	}
}
