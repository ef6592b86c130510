// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-blog/internal/config"
	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/internal/store"
	"github.com/MKhiriev/go-blog/internal/validators"
	"github.com/MKhiriev/go-blog/models"
	"github.com/golang-jwt/jwt/v5"
)

// Assertion claims read in addition to sub and exp.
const (
	claimName        = "name"
	claimEmail       = "email"
	claimLoginMethod = "loginMethod"
)

// externalIdentityProvider trusts HS256 assertions signed by the identity
// portal. The subject is the portal's open id; the profile claims are
// upserted onto the local user.
type externalIdentityProvider struct {
	userRepository store.UserRepository
	assertionKey   []byte
	ownerOpenID    string
	now            func() time.Time
}

func NewExternalIdentityProvider(userRepository store.UserRepository, cfg config.App) IdentityProvider {
	return &externalIdentityProvider{
		userRepository: userRepository,
		assertionKey:   []byte(cfg.ExternalAssertionKey),
		ownerOpenID:    cfg.OwnerOpenID,
		now:            time.Now,
	}
}

func (p *externalIdentityProvider) Mode() string {
	return config.IdentityModeExternal
}

// Resolve verifies the assertion, upserts the user by open id and returns
// the stored row. Any problem with the assertion is ErrInvalidCredentials.
func (p *externalIdentityProvider) Resolve(ctx context.Context, credentials models.Credentials) (models.User, error) {
	log := logger.FromContext(ctx)

	openID, attrs, err := p.parseAssertion(credentials.Assertion)
	if err != nil {
		log.Debug().Err(err).Str("func", "*externalIdentityProvider.Resolve").Msg("assertion rejected")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	}

	if err = p.userRepository.UpsertByExternalID(ctx, openID, attrs); err != nil {
		log.Err(err).Str("func", "*externalIdentityProvider.Resolve").Str("open_id", openID).Msg("error upserting external user")
		return models.User{}, mapUserConflict(err)
	}

	user, err := p.userRepository.FindUserByOpenID(ctx, openID)
	if err != nil {
		log.Err(err).Str("func", "*externalIdentityProvider.Resolve").Str("open_id", openID).Msg("error loading external user")
		return models.User{}, fmt.Errorf("error loading external user: %w", err)
	}

	return user, nil
}

func (p *externalIdentityProvider) parseAssertion(assertion string) (string, models.ExternalUserAttributes, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(assertion, claims, func(token *jwt.Token) (any, error) {
		return p.assertionKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(p.now),
	)
	if err != nil {
		return "", models.ExternalUserAttributes{}, err
	}

	openID, err := claims.GetSubject()
	if err != nil {
		return "", models.ExternalUserAttributes{}, err
	}
	if openID == "" {
		return "", models.ExternalUserAttributes{}, errors.New("assertion has no subject")
	}

	var attrs models.ExternalUserAttributes
	if attrs.Name, err = optionalClaim(claims, claimName); err != nil {
		return "", models.ExternalUserAttributes{}, err
	}
	if attrs.Email, err = optionalClaim(claims, claimEmail); err != nil {
		return "", models.ExternalUserAttributes{}, err
	}
	if email, ok := attrs.Email.Get(); ok {
		attrs.Email = models.Some(validators.NormalizeEmail(email))
	}
	if attrs.LoginMethod, err = optionalClaim(claims, claimLoginMethod); err != nil {
		return "", models.ExternalUserAttributes{}, err
	}

	if p.ownerOpenID != "" && openID == p.ownerOpenID {
		attrs.Role = models.Some(models.RoleAdmin)
	}

	return openID, attrs, nil
}

// optionalClaim keeps the three states of a string claim: absent stays
// omitted, JSON null becomes Null and a string becomes Some.
func optionalClaim(claims jwt.MapClaims, name string) (models.Optional[string], error) {
	raw, present := claims[name]
	if !present {
		return models.Optional[string]{}, nil
	}
	if raw == nil {
		return models.Null[string](), nil
	}

	value, ok := raw.(string)
	if !ok {
		return models.Optional[string]{}, fmt.Errorf("claim %q is not a string", name)
	}
	return models.Some(value), nil
}
