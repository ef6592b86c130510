// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// server invariants before it is used at startup.
//
// Every failed rule is reported; the returned error matches the group
// sentinel ([ErrInvalidAppConfigs], [ErrInvalidStorageConfigs], ...) with
// [errors.Is].
func (cfg *StructuredConfig) validate() error {
	var errs []error

	if cfg.App.TokenSignKey == "" {
		errs = append(errs, fmt.Errorf("%w: token sign key is empty", ErrInvalidAppConfigs))
	}
	if cfg.App.TokenDuration <= 0 {
		errs = append(errs, fmt.Errorf("%w: token duration must be positive", ErrInvalidAppConfigs))
	}
	if cfg.App.PasswordHashCost < bcrypt.MinCost || cfg.App.PasswordHashCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("%w: password hash cost must be within [%d, %d]",
			ErrInvalidAppConfigs, bcrypt.MinCost, bcrypt.MaxCost))
	}

	switch cfg.App.IdentityMode {
	case IdentityModePassword:
	case IdentityModeExternal:
		if cfg.App.ExternalAssertionKey == "" {
			errs = append(errs, fmt.Errorf("%w: external identity mode requires an assertion key", ErrInvalidAppConfigs))
		}
	default:
		errs = append(errs, fmt.Errorf("%w: unknown identity mode %q", ErrInvalidAppConfigs, cfg.App.IdentityMode))
	}

	if cfg.Cookie.Name == "" {
		errs = append(errs, fmt.Errorf("%w: cookie name is empty", ErrInvalidCookieConfigs))
	}
	switch strings.ToLower(cfg.Cookie.SameSite) {
	case SameSiteLax, SameSiteStrict, SameSiteNone:
	default:
		errs = append(errs, fmt.Errorf("%w: unknown SameSite policy %q", ErrInvalidCookieConfigs, cfg.Cookie.SameSite))
	}

	switch cfg.Storage.DB.Driver {
	case DriverPostgres, DriverMySQL, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver))
	}
	if cfg.Storage.DB.DSN == "" {
		errs = append(errs, fmt.Errorf("%w: database DSN is empty", ErrInvalidStorageConfigs))
	}

	if cfg.Server.HTTPAddress == "" {
		errs = append(errs, fmt.Errorf("%w: http address is empty", ErrInvalidServerConfigs))
	}

	return errors.Join(errs...)
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	return nil
}
