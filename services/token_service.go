package services

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"ballmate_server/errs"

	"github.com/golang-jwt/jwt/v5"
)

type ctxKey string

const userIDKey ctxKey = "userId"

// TokenService resolves the acting user from a request's bearer token.
// It is the only identity surface the matching core knows about.
type TokenService struct {
	Secret []byte
	TTL    time.Duration
}

// NewTokenServiceFromEnv reads JWT_SECRET.
func NewTokenServiceFromEnv() *TokenService {
	return &TokenService{
		Secret: []byte(os.Getenv("JWT_SECRET")),
		TTL:    24 * time.Hour,
	}
}

// ResolveUserID extracts and verifies the bearer token, returning the
// user id carried in the sub claim.
func (ts *TokenService) ResolveUserID(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", errs.ErrNoSession
	}
	raw := strings.TrimSpace(header[len("Bearer "):])

	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return ts.Secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", errs.ErrNoSession
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", errs.ErrNoSession
	}
	return sub, nil
}

// IssueAccessToken signs a token for the user id.
func (ts *TokenService) IssueAccessToken(userID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ts.TTL)),
	})
	return token.SignedString(ts.Secret)
}

// WithUserID stores the resolved user id on the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext reads the resolved user id; errs.ErrNoSession when
// the request never passed the auth middleware.
func UserIDFromContext(ctx context.Context) (string, error) {
	id, _ := ctx.Value(userIDKey).(string)
	if id == "" {
		return "", errs.ErrNoSession
	}
	return id, nil
}
