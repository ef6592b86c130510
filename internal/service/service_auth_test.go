package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/MKhiriev/go-blog/internal/config"
	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/internal/mock"
	"github.com/MKhiriev/go-blog/internal/store"
	"github.com/MKhiriev/go-blog/internal/utils"
	"github.com/MKhiriev/go-blog/internal/validators"
	"github.com/MKhiriev/go-blog/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

var testNow = time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC)

func testAppConfig() config.App {
	return config.App{
		TokenSignKey:     "test-sign-key",
		TokenIssuer:      "go-blog-test",
		TokenDuration:    time.Hour,
		PasswordHashCost: bcrypt.MinCost,
		OperationTimeout: time.Second,
		IdentityMode:     config.IdentityModePassword,
		Version:          "test",
	}
}

func testHasher(t *testing.T) *utils.PasswordHasher {
	t.Helper()
	hasher, err := utils.NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)
	return hasher
}

// newTestAuthSvc: builds an authService in password mode on top of a mocked
// UserRepository.
func newTestAuthSvc(t *testing.T, ctrl *gomock.Controller, cfg config.App) (*authService, *mock.MockUserRepository, *utils.PasswordHasher) {
	t.Helper()
	users := mock.NewMockUserRepository(ctrl)
	hasher := testHasher(t)

	provider, err := NewPasswordIdentityProvider(context.Background(), users, hasher)
	require.NoError(t, err)

	svc := NewAuthService(users, provider, hasher, cfg, logger.Nop()).(*authService)
	svc.now = func() time.Time { return testNow }

	return svc, users, hasher
}

func validRegisterRequest() models.RegisterRequest {
	return models.RegisterRequest{Username: "alice1", Email: "Alice@Example.com ", Password: "password123"}
}

// ── RegisterUser ──────────────────────────────────────────────────────────────

func TestAuthService_RegisterUser_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users, hasher := newTestAuthSvc(t, ctrl, testAppConfig())
	ctx := context.Background()

	gomock.InOrder(
		users.EXPECT().FindUserByEmail(gomock.Any(), "alice@example.com").Return(models.User{}, store.ErrNoUserWasFound),
		users.EXPECT().FindUserByUsername(gomock.Any(), "alice1").Return(models.User{}, store.ErrNoUserWasFound),
		users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, u models.User) (models.User, error) {
				assert.Equal(t, "alice1", u.Username)
				assert.Equal(t, "alice@example.com", u.Email)
				assert.Equal(t, models.RoleUser, u.Role)
				assert.NotEqual(t, "password123", u.PasswordHash)

				ok, err := hasher.Verify(context.Background(), "password123", u.PasswordHash)
				require.NoError(t, err)
				assert.True(t, ok)

				u.ID = 1
				return u, nil
			},
		),
	)

	user, err := svc.RegisterUser(ctx, validRegisterRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
}

func TestAuthService_RegisterUser_ValidationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _ := newTestAuthSvc(t, ctrl, testAppConfig())

	req := validRegisterRequest()
	req.Password = "short"

	_, err := svc.RegisterUser(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidDataProvided)
	require.ErrorIs(t, err, validators.ErrPasswordTooShort)

	var fieldErr *validators.FieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, validators.FieldPassword, fieldErr.Field)
}

func TestAuthService_RegisterUser_EmailTaken(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users, _ := newTestAuthSvc(t, ctrl, testAppConfig())

	users.EXPECT().FindUserByEmail(gomock.Any(), "alice@example.com").Return(models.User{ID: 5}, nil)

	_, err := svc.RegisterUser(context.Background(), validRegisterRequest())
	assert.ErrorIs(t, err, ErrEmailAlreadyRegistered)
}

func TestAuthService_RegisterUser_UsernameTaken(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users, _ := newTestAuthSvc(t, ctrl, testAppConfig())

	users.EXPECT().FindUserByEmail(gomock.Any(), gomock.Any()).Return(models.User{}, store.ErrNoUserWasFound)
	users.EXPECT().FindUserByUsername(gomock.Any(), "alice1").Return(models.User{ID: 5}, nil)

	_, err := svc.RegisterUser(context.Background(), validRegisterRequest())
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestAuthService_RegisterUser_ConstraintRace(t *testing.T) {
	tests := []struct {
		name    string
		storeEr error
		want    error
	}{
		{name: "email", storeEr: store.ErrEmailAlreadyExists, want: ErrEmailAlreadyRegistered},
		{name: "username", storeEr: store.ErrUsernameAlreadyExists, want: ErrUsernameTaken},
		{name: "unknown column", storeEr: store.ErrUserAlreadyExists, want: ErrUserAlreadyExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc, users, _ := newTestAuthSvc(t, ctrl, testAppConfig())

			users.EXPECT().FindUserByEmail(gomock.Any(), gomock.Any()).Return(models.User{}, store.ErrNoUserWasFound)
			users.EXPECT().FindUserByUsername(gomock.Any(), gomock.Any()).Return(models.User{}, store.ErrNoUserWasFound)
			users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(models.User{}, tt.storeEr)

			_, err := svc.RegisterUser(context.Background(), validRegisterRequest())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAuthService_RegisterUser_LookupFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users, _ := newTestAuthSvc(t, ctrl, testAppConfig())

	users.EXPECT().FindUserByEmail(gomock.Any(), gomock.Any()).Return(models.User{}, store.ErrExecutingQuery)

	_, err := svc.RegisterUser(context.Background(), validRegisterRequest())
	require.ErrorIs(t, err, store.ErrExecutingQuery)
	assert.NotErrorIs(t, err, ErrEmailAlreadyRegistered)
}

func TestAuthService_RegisterUser_Timeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	cfg := testAppConfig()
	cfg.OperationTimeout = 10 * time.Millisecond
	svc, users, _ := newTestAuthSvc(t, ctrl, cfg)

	users.EXPECT().FindUserByEmail(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string) (models.User, error) {
			<-ctx.Done()
			return models.User{}, fmt.Errorf("%w: %w", store.ErrExecutingQuery, ctx.Err())
		},
	)

	_, err := svc.RegisterUser(context.Background(), validRegisterRequest())
	assert.ErrorIs(t, err, ErrTimeout)
}

// ── Login ─────────────────────────────────────────────────────────────────────

func TestAuthService_RegisterThenLogin_TokenResolvesToSameUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users, _ := newTestAuthSvc(t, ctrl, testAppConfig())
	ctx := context.Background()

	var stored models.User
	users.EXPECT().FindUserByEmail(gomock.Any(), "alice@example.com").Return(models.User{}, store.ErrNoUserWasFound)
	users.EXPECT().FindUserByUsername(gomock.Any(), "alice1").Return(models.User{}, store.ErrNoUserWasFound)
	users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, u models.User) (models.User, error) {
			u.ID = 42
			stored = u
			return u, nil
		},
	)

	registered, err := svc.RegisterUser(ctx, validRegisterRequest())
	require.NoError(t, err)

	users.EXPECT().FindUserByEmail(gomock.Any(), "alice@example.com").DoAndReturn(
		func(context.Context, string) (models.User, error) { return stored, nil },
	)

	loggedIn, err := svc.Login(ctx, models.Credentials{Email: "ALICE@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, loggedIn.ID)

	token, err := svc.CreateToken(ctx, loggedIn)
	require.NoError(t, err)

	parsed, err := svc.ParseToken(ctx, token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, int64(42), parsed.UserID)
}

func TestAuthService_Login_InvalidCredentialsAreIndistinguishable(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users, hasher := newTestAuthSvc(t, ctrl, testAppConfig())
	ctx := context.Background()

	hash, err := hasher.Hash(ctx, "password123")
	require.NoError(t, err)

	users.EXPECT().FindUserByEmail(gomock.Any(), "ghost@example.com").Return(models.User{}, store.ErrNoUserWasFound)
	users.EXPECT().FindUserByEmail(gomock.Any(), "alice@example.com").Return(models.User{ID: 1, PasswordHash: hash}, nil)

	_, errUnknown := svc.Login(ctx, models.Credentials{Email: "ghost@example.com", Password: "password123"})
	_, errWrong := svc.Login(ctx, models.Credentials{Email: "alice@example.com", Password: "wrong-password"})

	require.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	require.ErrorIs(t, errWrong, ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrong.Error())
}

func TestAuthService_Login_UserWithoutPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users, _ := newTestAuthSvc(t, ctrl, testAppConfig())

	users.EXPECT().FindUserByEmail(gomock.Any(), gomock.Any()).Return(models.User{ID: 3, OpenID: "portal-3"}, nil)

	_, err := svc.Login(context.Background(), models.Credentials{Email: "ext@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _ := newTestAuthSvc(t, ctrl, testAppConfig())

	for _, creds := range []models.Credentials{
		{Email: "alice@example.com"},
		{Password: "password123"},
		{},
	} {
		_, err := svc.Login(context.Background(), creds)
		require.ErrorIs(t, err, ErrInvalidDataProvided)
		assert.ErrorIs(t, err, validators.ErrCredentialsRequired)
	}
}

func TestAuthService_Login_StorageFailureIsNotInvalidCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users, _ := newTestAuthSvc(t, ctrl, testAppConfig())

	users.EXPECT().FindUserByEmail(gomock.Any(), gomock.Any()).Return(models.User{}, store.ErrExecutingQuery)

	_, err := svc.Login(context.Background(), models.Credentials{Email: "alice@example.com", Password: "password123"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

// ── Tokens ────────────────────────────────────────────────────────────────────

func TestAuthService_CreateToken_InvalidUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _ := newTestAuthSvc(t, ctrl, testAppConfig())

	_, err := svc.CreateToken(context.Background(), models.User{})
	assert.ErrorIs(t, err, ErrTokenCreationFailed)
}

func TestAuthService_ParseToken_Expired(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _ := newTestAuthSvc(t, ctrl, testAppConfig())
	ctx := context.Background()

	token, err := svc.CreateToken(ctx, models.User{ID: 7})
	require.NoError(t, err)

	svc.now = func() time.Time { return testNow.Add(2 * time.Hour) }

	_, err = svc.ParseToken(ctx, token.SignedString)
	require.ErrorIs(t, err, ErrTokenIsExpired)
	assert.NotErrorIs(t, err, ErrTokenIsInvalid)
}

func TestAuthService_ParseToken_ForeignKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _ := newTestAuthSvc(t, ctrl, testAppConfig())

	foreign, err := utils.GenerateJWTToken("go-blog-test", 7, time.Hour, "other-key", testNow)
	require.NoError(t, err)

	_, err = svc.ParseToken(context.Background(), foreign.SignedString)
	assert.ErrorIs(t, err, ErrTokenIsInvalid)
}

// ── Authenticate ──────────────────────────────────────────────────────────────

func TestAuthService_Authenticate(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users, _ := newTestAuthSvc(t, ctrl, testAppConfig())
	ctx := context.Background()

	token, err := svc.CreateToken(ctx, models.User{ID: 9})
	require.NoError(t, err)

	users.EXPECT().FindUserByID(gomock.Any(), int64(9)).Return(models.User{ID: 9, Username: "alice1"}, nil)

	user, err := svc.Authenticate(ctx, token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, "alice1", user.Username)
}

func TestAuthService_Authenticate_Failures(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users, _ := newTestAuthSvc(t, ctrl, testAppConfig())
	ctx := context.Background()

	_, err := svc.Authenticate(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = svc.Authenticate(ctx, "not-a-token")
	assert.ErrorIs(t, err, ErrTokenIsInvalid)

	token, err := svc.CreateToken(ctx, models.User{ID: 10})
	require.NoError(t, err)
	users.EXPECT().FindUserByID(gomock.Any(), int64(10)).Return(models.User{}, store.ErrNoUserWasFound)

	_, err = svc.Authenticate(ctx, token.SignedString)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthService_IdentityMode(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _ := newTestAuthSvc(t, ctrl, testAppConfig())

	assert.Equal(t, config.IdentityModePassword, svc.IdentityMode())
}
