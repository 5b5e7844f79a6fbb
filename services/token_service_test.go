package services

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"ballmate_server/errs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenService() *TokenService {
	return &TokenService{Secret: []byte("test-secret"), TTL: time.Hour}
}

func TestResolveUserIDRoundTrip(t *testing.T) {
	ts := newTokenService()

	token, err := ts.IssueAccessToken("user-1")
	require.NoError(t, err)

	r := httptest.NewRequest("GET", "/api/v1/users/info", nil)
	r.Header.Set("Authorization", "Bearer "+token)

	userID, err := ts.ResolveUserID(r)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestResolveUserIDRejectsBadTokens(t *testing.T) {
	ts := newTokenService()

	t.Run("missing header", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		_, err := ts.ResolveUserID(r)
		assert.ErrorIs(t, err, errs.ErrNoSession)
	})

	t.Run("not a bearer token", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		_, err := ts.ResolveUserID(r)
		assert.ErrorIs(t, err, errs.ErrNoSession)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := &TokenService{Secret: []byte("other-secret"), TTL: time.Hour}
		token, err := other.IssueAccessToken("user-1")
		require.NoError(t, err)

		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		_, err = ts.ResolveUserID(r)
		assert.ErrorIs(t, err, errs.ErrNoSession)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := &TokenService{Secret: ts.Secret, TTL: -time.Hour}
		token, err := expired.IssueAccessToken("user-1")
		require.NoError(t, err)

		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		_, err = ts.ResolveUserID(r)
		assert.ErrorIs(t, err, errs.ErrNoSession)
	})

	t.Run("missing subject", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})
		signed, err := token.SignedString(ts.Secret)
		require.NoError(t, err)

		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("Authorization", "Bearer "+signed)
		_, err = ts.ResolveUserID(r)
		assert.ErrorIs(t, err, errs.ErrNoSession)
	})
}

func TestUserIDContext(t *testing.T) {
	_, err := UserIDFromContext(context.Background())
	assert.ErrorIs(t, err, errs.ErrNoSession)

	ctx := WithUserID(context.Background(), "user-1")
	userID, err := UserIDFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}
