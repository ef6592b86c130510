package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-blog/internal/config"
	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/internal/store"
	"github.com/MKhiriev/go-blog/internal/utils"
	"github.com/MKhiriev/go-blog/internal/validators"
	"github.com/MKhiriev/go-blog/models"
)

// authService is the concrete implementation of AuthService.
// It handles user registration, credential resolution through the active
// IdentityProvider and the session token lifecycle.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// identityProvider resolves login credentials into a stored user.
	identityProvider IdentityProvider

	// hasher produces the bcrypt hash stored at registration.
	hasher *utils.PasswordHasher

	validator validators.Validator

	// tokenSignKey is the HMAC secret used to sign and verify session tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued token.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued token remains valid.
	tokenDuration time.Duration

	timeout operationTimeout
	now     func() time.Time

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and IdentityProvider and populated with session parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, identityProvider IdentityProvider, hasher *utils.PasswordHasher, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:   userRepository,
		identityProvider: identityProvider,
		hasher:           hasher,
		validator:        validators.NewUserValidator(),
		tokenSignKey:     cfg.TokenSignKey,
		tokenIssuer:      cfg.TokenIssuer,
		tokenDuration:    cfg.TokenDuration,
		timeout:          operationTimeout(cfg.OperationTimeout),
		now:              time.Now,
		logger:           logger,
	}
}

// RegisterUser creates a new password account.
//
// The request is validated, the email normalized, and the email and username
// checked for existing owners before the password is hashed and the user
// persisted. A concurrent registration that slips past the checks is caught
// by the storage unique constraints and reported the same way.
//
// Returns the persisted user or:
//   - ErrInvalidDataProvided wrapping a *validators.FieldError;
//   - ErrEmailAlreadyRegistered or ErrUsernameTaken;
//   - ErrTimeout if the operation deadline passes.
func (a *authService) RegisterUser(ctx context.Context, request models.RegisterRequest) (models.User, error) {
	ctx, cancel := a.timeout.start(ctx)
	defer cancel()

	user, err := a.registerUser(ctx, request)
	return user, finish(err)
}

func (a *authService) registerUser(ctx context.Context, request models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, request); err != nil {
		log.Debug().Err(err).Str("func", "*authService.RegisterUser").Msg("invalid registration data")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	email := validators.NormalizeEmail(request.Email)

	if err := a.ensureFree(ctx, email, a.userRepository.FindUserByEmail, ErrEmailAlreadyRegistered); err != nil {
		return models.User{}, err
	}
	if err := a.ensureFree(ctx, request.Username, a.userRepository.FindUserByUsername, ErrUsernameTaken); err != nil {
		return models.User{}, err
	}

	hash, err := a.hasher.Hash(ctx, request.Password)
	if err != nil {
		log.Err(err).Str("func", "*authService.RegisterUser").Msg("error hashing password")
		return models.User{}, fmt.Errorf("error hashing password: %w", err)
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, models.User{
		Username:     request.Username,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleUser,
	})
	if err != nil {
		log.Err(err).Str("func", "*authService.RegisterUser").Str("username", request.Username).Msg("user creation ended with error")
		return models.User{}, mapUserConflict(err)
	}

	log.Info().Str("func", "*authService.RegisterUser").Int64("user_id", registeredUser.ID).Msg("user registered")
	return registeredUser, nil
}

// ensureFree fails with taken when find locates a user.
func (a *authService) ensureFree(ctx context.Context, value string, find func(context.Context, string) (models.User, error), taken error) error {
	_, err := find(ctx, value)
	switch {
	case err == nil:
		return taken
	case errors.Is(err, store.ErrNoUserWasFound):
		return nil
	default:
		logger.FromContext(ctx).Err(err).Str("func", "*authService.ensureFree").Msg("user lookup failed")
		return fmt.Errorf("user lookup failed: %w", err)
	}
}

// Login validates credentials for the active identity mode and resolves
// them through the IdentityProvider.
//
// Returns the authenticated user or:
//   - ErrInvalidDataProvided if required fields are missing;
//   - ErrInvalidCredentials for an unknown email, a wrong password or a
//     rejected assertion, without telling these apart;
//   - ErrTimeout if the operation deadline passes.
func (a *authService) Login(ctx context.Context, credentials models.Credentials) (models.User, error) {
	ctx, cancel := a.timeout.start(ctx)
	defer cancel()

	user, err := a.login(ctx, credentials)
	return user, finish(err)
}

func (a *authService) login(ctx context.Context, credentials models.Credentials) (models.User, error) {
	var request any = models.LoginRequest{Email: credentials.Email, Password: credentials.Password}
	if a.identityProvider.Mode() == config.IdentityModeExternal {
		request = models.ExternalSignInRequest{Assertion: credentials.Assertion}
	}

	if err := a.validator.Validate(ctx, request); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user, err := a.identityProvider.Resolve(ctx, credentials)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "*authService.Login").Msg("credentials were not resolved")
		return models.User{}, err
	}

	return user, nil
}

// CreateToken issues a signed session token for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.ID, a.tokenDuration, a.tokenSignKey, a.now())
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.CreateToken").Int64("user_id", user.ID).Msg("error creating token")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw session token.
//
// Returns the decoded token or ErrTokenIsExpired for a genuine token past its
// expiry and ErrTokenIsInvalid for everything else.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer, a.now())
	if err != nil {
		if errors.Is(err, utils.ErrTokenExpired) {
			return models.Token{}, fmt.Errorf("%w: %w", ErrTokenIsExpired, err)
		}
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenIsInvalid, err)
	}

	return token, nil
}

// Authenticate returns the user owning tokenString. An empty token yields
// ErrUnauthenticated; a token of a user that no longer exists does too.
func (a *authService) Authenticate(ctx context.Context, tokenString string) (models.User, error) {
	if tokenString == "" {
		return models.User{}, ErrUnauthenticated
	}

	token, err := a.ParseToken(ctx, tokenString)
	if err != nil {
		return models.User{}, err
	}

	ctx, cancel := a.timeout.start(ctx)
	defer cancel()

	user, err := a.userRepository.FindUserByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
		}
		logger.FromContext(ctx).Err(err).Str("func", "*authService.Authenticate").Int64("user_id", token.UserID).Msg("error loading session user")
		return models.User{}, finish(fmt.Errorf("error loading session user: %w", err))
	}

	return user, nil
}

func (a *authService) IdentityMode() string {
	return a.identityProvider.Mode()
}

// mapUserConflict translates storage unique violations into service errors.
func mapUserConflict(err error) error {
	switch {
	case errors.Is(err, store.ErrEmailAlreadyExists):
		return fmt.Errorf("%w: %w", ErrEmailAlreadyRegistered, err)
	case errors.Is(err, store.ErrUsernameAlreadyExists):
		return fmt.Errorf("%w: %w", ErrUsernameTaken, err)
	case errors.Is(err, store.ErrUserAlreadyExists):
		return fmt.Errorf("%w: %w", ErrUserAlreadyExists, err)
	default:
		return fmt.Errorf("user creation ended with error: %w", err)
	}
}
