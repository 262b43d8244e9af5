// Package auth implements the demo sign-in and the bearer-token plumbing:
// issuing short-lived HS256 tokens, verifying them on every request, and
// exposing the authenticated identity through the request context.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the token claims: the standard set plus the user's roles.
type Claims struct {
	jwt.RegisteredClaims
	Roles []string `json:"roles,omitempty"`
}

type contextKey string

const (
	userKey  contextKey = "auth_user"
	rolesKey contextKey = "auth_roles"
)

// Authenticate checks the demo credential pair. There is no credential
// store; the service trusts the perimeter and this exists so the token flow
// is exercised end to end.
func Authenticate(username, password string) bool {
	return username == "admin" && password == "admin"
}

// Issuer mints bearer tokens for signed-in users.
type Issuer struct {
	Secret []byte
	TTL    time.Duration
}

// IssueToken returns a signed HS256 token for the user, valid for the
// issuer's TTL.
func (i Issuer) IssueToken(username string, roles []string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.TTL)),
		},
		Roles: roles,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.Secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies a bearer token and returns its claims. Only HS256 is
// accepted; anything else, including "none", is rejected.
func ParseToken(secret []byte, raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// WithIdentity stores the authenticated identity on the context.
func WithIdentity(ctx context.Context, user string, roles []string) context.Context {
	ctx = context.WithValue(ctx, userKey, user)
	return context.WithValue(ctx, rolesKey, roles)
}

// UserFromContext returns the authenticated username, "" when anonymous.
func UserFromContext(ctx context.Context) string {
	user, _ := ctx.Value(userKey).(string)
	return user
}

// RolesFromContext returns the authenticated user's roles, nil when
// anonymous.
func RolesFromContext(ctx context.Context) []string {
	roles, _ := ctx.Value(rolesKey).([]string)
	return roles
}
