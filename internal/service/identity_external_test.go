// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-blog/internal/config"
	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/internal/mock"
	"github.com/MKhiriev/go-blog/internal/store"
	"github.com/MKhiriev/go-blog/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testAssertionKey = "portal-shared-key"
	testOwnerOpenID  = "owner-open-id"
)

func newTestExternalProvider(t *testing.T, ctrl *gomock.Controller) (*externalIdentityProvider, *mock.MockUserRepository) {
	t.Helper()
	users := mock.NewMockUserRepository(ctrl)

	cfg := testAppConfig()
	cfg.IdentityMode = config.IdentityModeExternal
	cfg.ExternalAssertionKey = testAssertionKey
	cfg.OwnerOpenID = testOwnerOpenID

	p := NewExternalIdentityProvider(users, cfg).(*externalIdentityProvider)
	p.now = func() time.Time { return testNow }
	return p, users
}

func signAssertion(t *testing.T, key string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return s
}

func baseClaims(sub string) jwt.MapClaims {
	return jwt.MapClaims{
		"sub": sub,
		"exp": testNow.Add(time.Minute).Unix(),
	}
}

// ── Resolve ───────────────────────────────────────────────────────────────────

func TestExternalIdentityProvider_Resolve_OwnerBecomesAdmin(t *testing.T) {
	ctrl := gomock.NewController(t)
	p, users := newTestExternalProvider(t, ctrl)

	claims := baseClaims(testOwnerOpenID)
	claims["name"] = "Owner"
	claims["email"] = " Owner@Example.com"

	gomock.InOrder(
		users.EXPECT().UpsertByExternalID(gomock.Any(), testOwnerOpenID, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, attrs models.ExternalUserAttributes) error {
				assert.Equal(t, models.Some("Owner"), attrs.Name)
				assert.Equal(t, models.Some("owner@example.com"), attrs.Email)
				assert.False(t, attrs.LoginMethod.Set, "absent claim must stay omitted")
				assert.Equal(t, models.Some(models.RoleAdmin), attrs.Role)
				assert.False(t, attrs.LastSignedIn.Set)
				return nil
			},
		),
		users.EXPECT().FindUserByOpenID(gomock.Any(), testOwnerOpenID).Return(models.User{ID: 1, OpenID: testOwnerOpenID, Role: models.RoleAdmin}, nil),
	)

	user, err := p.Resolve(context.Background(), models.Credentials{Assertion: signAssertion(t, testAssertionKey, claims)})
	require.NoError(t, err)
	assert.True(t, user.IsAdmin())
}

func TestExternalIdentityProvider_Resolve_NullClaimClears(t *testing.T) {
	ctrl := gomock.NewController(t)
	p, users := newTestExternalProvider(t, ctrl)

	claims := baseClaims("member-1")
	claims["name"] = nil
	claims["loginMethod"] = "google"

	users.EXPECT().UpsertByExternalID(gomock.Any(), "member-1", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, attrs models.ExternalUserAttributes) error {
			assert.Equal(t, models.Null[string](), attrs.Name)
			assert.Equal(t, models.Some("google"), attrs.LoginMethod)
			assert.False(t, attrs.Role.Set, "non-owner role must not be touched")
			return nil
		},
	)
	users.EXPECT().FindUserByOpenID(gomock.Any(), "member-1").Return(models.User{ID: 2, OpenID: "member-1"}, nil)

	user, err := p.Resolve(context.Background(), models.Credentials{Assertion: signAssertion(t, testAssertionKey, claims)})
	require.NoError(t, err)
	assert.Equal(t, int64(2), user.ID)
}

func TestExternalIdentityProvider_Resolve_RejectedAssertions(t *testing.T) {
	expired := baseClaims("member-1")
	expired["exp"] = testNow.Add(-time.Minute).Unix()

	noExp := jwt.MapClaims{"sub": "member-1"}
	noSub := jwt.MapClaims{"exp": testNow.Add(time.Minute).Unix()}

	badName := baseClaims("member-1")
	badName["name"] = 42

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, baseClaims("member-1")).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name      string
		assertion string
	}{
		{name: "garbage", assertion: "garbage"},
		{name: "foreign key", assertion: signAssertion(t, "other-key", baseClaims("member-1"))},
		{name: "expired", assertion: signAssertion(t, testAssertionKey, expired)},
		{name: "missing exp", assertion: signAssertion(t, testAssertionKey, noExp)},
		{name: "missing sub", assertion: signAssertion(t, testAssertionKey, noSub)},
		{name: "non-string claim", assertion: signAssertion(t, testAssertionKey, badName)},
		{name: "alg none", assertion: none},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			p, _ := newTestExternalProvider(t, ctrl)

			_, err := p.Resolve(context.Background(), models.Credentials{Assertion: tt.assertion})
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestExternalIdentityProvider_Resolve_UpsertConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	p, users := newTestExternalProvider(t, ctrl)

	claims := baseClaims("member-1")
	claims["email"] = "taken@example.com"

	users.EXPECT().UpsertByExternalID(gomock.Any(), "member-1", gomock.Any()).Return(store.ErrEmailAlreadyExists)

	_, err := p.Resolve(context.Background(), models.Credentials{Assertion: signAssertion(t, testAssertionKey, claims)})
	assert.ErrorIs(t, err, ErrEmailAlreadyRegistered)
}

func TestAuthService_Login_ExternalMode(t *testing.T) {
	ctrl := gomock.NewController(t)
	p, users := newTestExternalProvider(t, ctrl)

	cfg := testAppConfig()
	cfg.IdentityMode = config.IdentityModeExternal
	svc := NewAuthService(users, p, testHasher(t), cfg, logger.Nop())

	_, err := svc.Login(context.Background(), models.Credentials{Email: "alice@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided, "external mode requires an assertion")

	users.EXPECT().UpsertByExternalID(gomock.Any(), "member-1", gomock.Any()).Return(nil)
	users.EXPECT().FindUserByOpenID(gomock.Any(), "member-1").Return(models.User{ID: 3}, nil)

	user, err := svc.Login(context.Background(), models.Credentials{Assertion: signAssertion(t, testAssertionKey, baseClaims("member-1"))})
	require.NoError(t, err)
	assert.Equal(t, int64(3), user.ID)
	assert.Equal(t, config.IdentityModeExternal, svc.IdentityMode())
}
