package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-catalog/internal/config"
	"movie-catalog/internal/errs"
	"movie-catalog/internal/repository"
	"movie-catalog/internal/testutil"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newAuthService(t *testing.T, ttl time.Duration) *authService {
	t.Helper()
	db := testutil.NewDatabase(t)
	logger, _ := test.NewNullLogger()
	svc := NewAuthService(
		repository.NewUserRepository(db),
		repository.NewTokenRepository(db),
		config.AuthConfig{JWTSecret: testSecret, TokenTTL: ttl, Issuer: "movie-catalog"},
		logger,
	)
	return svc.(*authService)
}

func TestAuthService_IssueAndAuthenticate(t *testing.T) {
	svc := newAuthService(t, time.Hour)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Test User", "Test@Example.com ", "password")
	require.NoError(t, err)
	assert.Equal(t, "test@example.com", user.Email)
	assert.NotEqual(t, "password", user.Password)

	issued, err := svc.IssueToken(ctx, "test@example.com", "password", "laptop")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", issued.TokenType)
	require.NotNil(t, issued.ExpiresAt)

	identity, err := svc.Authenticate(ctx, issued.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.User.ID)
	assert.NotZero(t, identity.TokenID)

	record, err := svc.tokens.FindByID(ctx, identity.TokenID)
	require.NoError(t, err)
	assert.NotNil(t, record.LastUsedAt)
	assert.Equal(t, "laptop", record.Name)
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService(t, 0)
	ctx := context.Background()

	_, err := svc.Register(ctx, "A", "a@example.com", "password")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "B", "A@example.com", "password")
	assert.Equal(t, errs.ECONFLICT, errs.ErrorCode(err))
}

func TestAuthService_BadCredentials(t *testing.T) {
	svc := newAuthService(t, 0)
	ctx := context.Background()
	_, err := svc.Register(ctx, "A", "a@example.com", "password")
	require.NoError(t, err)

	_, err = svc.IssueToken(ctx, "a@example.com", "wrong", "cli")
	assert.Equal(t, errs.EUNAUTHORIZED, errs.ErrorCode(err))

	_, err = svc.IssueToken(ctx, "nobody@example.com", "password", "cli")
	assert.Equal(t, errs.EUNAUTHORIZED, errs.ErrorCode(err))
}

func TestAuthService_RejectsInvalidTokens(t *testing.T) {
	svc := newAuthService(t, time.Hour)
	ctx := context.Background()
	_, err := svc.Register(ctx, "A", "a@example.com", "password")
	require.NoError(t, err)
	issued, err := svc.IssueToken(ctx, "a@example.com", "password", "cli")
	require.NoError(t, err)

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:  "movie-catalog",
		Subject: "1",
		ID:      "1",
	}).SignedString([]byte("another-secret-another-secret-xx"))
	require.NoError(t, err)

	wrongIssuer, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:  "someone-else",
		Subject: "1",
		ID:      "1",
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	cases := map[string]string{
		"empty":        "",
		"garbage":      "not-a-jwt",
		"tampered":     issued.Token[:len(issued.Token)-2] + "xx",
		"other secret": forged,
		"wrong issuer": wrongIssuer,
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Authenticate(ctx, token)
			require.Error(t, err)
			assert.Equal(t, errs.EUNAUTHORIZED, errs.ErrorCode(err))
			assert.Equal(t, "Unauthenticated.", errs.ErrorMessage(err))
		})
	}
}

func TestAuthService_ExpiredToken(t *testing.T) {
	svc := newAuthService(t, time.Hour)
	ctx := context.Background()
	_, err := svc.Register(ctx, "A", "a@example.com", "password")
	require.NoError(t, err)
	issued, err := svc.IssueToken(ctx, "a@example.com", "password", "cli")
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().UTC().Add(2 * time.Hour) }

	_, err = svc.Authenticate(ctx, issued.Token)
	assert.Equal(t, errs.EUNAUTHORIZED, errs.ErrorCode(err))
}

func TestAuthService_TokensWithoutTTLDoNotExpire(t *testing.T) {
	svc := newAuthService(t, 0)
	ctx := context.Background()
	_, err := svc.Register(ctx, "A", "a@example.com", "password")
	require.NoError(t, err)
	issued, err := svc.IssueToken(ctx, "a@example.com", "password", "cli")
	require.NoError(t, err)
	assert.Nil(t, issued.ExpiresAt)

	svc.now = func() time.Time { return time.Now().UTC().AddDate(5, 0, 0) }

	_, err = svc.Authenticate(ctx, issued.Token)
	assert.NoError(t, err)
}

func TestAuthService_RevokedToken(t *testing.T) {
	svc := newAuthService(t, time.Hour)
	ctx := context.Background()
	_, err := svc.Register(ctx, "A", "a@example.com", "password")
	require.NoError(t, err)
	issued, err := svc.IssueToken(ctx, "a@example.com", "password", "cli")
	require.NoError(t, err)

	identity, err := svc.Authenticate(ctx, issued.Token)
	require.NoError(t, err)

	require.NoError(t, svc.RevokeToken(ctx, identity.TokenID))

	_, err = svc.Authenticate(ctx, issued.Token)
	assert.Equal(t, errs.EUNAUTHORIZED, errs.ErrorCode(err))
}
