package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-blog/internal/config"
	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/internal/store"
	"github.com/MKhiriev/go-blog/internal/utils"
	"github.com/MKhiriev/go-blog/internal/validators"
	"github.com/MKhiriev/go-blog/models"
)

// dummyPassword is hashed once at startup. Logins for unknown emails are
// compared against it so that they cost as much as a wrong password.
const dummyPassword = "go-blog-dummy-password"

// passwordIdentityProvider resolves email and password credentials.
type passwordIdentityProvider struct {
	userRepository store.UserRepository
	hasher         *utils.PasswordHasher
	dummyHash      string
}

// NewPasswordIdentityProvider builds the password strategy. It hashes the
// timing dummy up front, so it takes one bcrypt round to return.
func NewPasswordIdentityProvider(ctx context.Context, userRepository store.UserRepository, hasher *utils.PasswordHasher) (IdentityProvider, error) {
	dummyHash, err := hasher.Hash(ctx, dummyPassword)
	if err != nil {
		return nil, fmt.Errorf("error preparing password identity provider: %w", err)
	}

	return &passwordIdentityProvider{
		userRepository: userRepository,
		hasher:         hasher,
		dummyHash:      dummyHash,
	}, nil
}

func (p *passwordIdentityProvider) Mode() string {
	return config.IdentityModePassword
}

// Resolve looks the user up by normalized email and verifies the password.
// Unknown email and wrong password both return ErrInvalidCredentials.
func (p *passwordIdentityProvider) Resolve(ctx context.Context, credentials models.Credentials) (models.User, error) {
	log := logger.FromContext(ctx)
	email := validators.NormalizeEmail(credentials.Email)

	user, err := p.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, store.ErrNoUserWasFound) {
			log.Err(err).Str("func", "*passwordIdentityProvider.Resolve").Msg("user search by email failed")
			return models.User{}, fmt.Errorf("user search by email failed: %w", err)
		}
		// keep the response time of unknown emails level with wrong passwords
		if _, err = p.hasher.Verify(ctx, credentials.Password, p.dummyHash); err != nil {
			return models.User{}, err
		}
		return models.User{}, ErrInvalidCredentials
	}

	hash := user.PasswordHash
	if hash == "" {
		hash = p.dummyHash
	}

	ok, err := p.hasher.Verify(ctx, credentials.Password, hash)
	if err != nil {
		log.Err(err).Str("func", "*passwordIdentityProvider.Resolve").Int64("user_id", user.ID).Msg("error verifying password")
		return models.User{}, fmt.Errorf("error verifying password: %w", err)
	}
	if !ok || user.PasswordHash == "" {
		log.Debug().Str("func", "*passwordIdentityProvider.Resolve").Int64("user_id", user.ID).Msg("wrong password")
		return models.User{}, ErrInvalidCredentials
	}

	return user, nil
}
