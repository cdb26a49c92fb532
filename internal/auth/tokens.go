package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token types carried in the "type" claim. Access tokens authenticate API
// calls; refresh tokens only mint new access tokens.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// ErrInvalidToken covers every verification failure: bad signature, expiry,
// wrong token type, missing subject.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the payload of both token kinds.
type Claims struct {
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// TokenIssuer mints and verifies HS256-signed access/refresh token pairs.
type TokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenIssuer creates a TokenIssuer for the given signing secret and
// token lifetimes.
func NewTokenIssuer(secret string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// AccessToken mints a short-lived access token for the subject.
func (ti *TokenIssuer) AccessToken(subject string) (string, error) {
	return ti.issue(subject, TokenTypeAccess, ti.accessTTL)
}

// RefreshToken mints a long-lived refresh token for the subject.
func (ti *TokenIssuer) RefreshToken(subject string) (string, error) {
	return ti.issue(subject, TokenTypeRefresh, ti.refreshTTL)
}

// RefreshTTL reports the configured refresh-token lifetime, which doubles as
// the refresh cookie's max age and the revocation retention period.
func (ti *TokenIssuer) RefreshTTL() time.Duration {
	return ti.refreshTTL
}

func (ti *TokenIssuer) issue(subject, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.secret)
}

// Decode verifies a token's signature and expiry and checks that it is of
// the expected type with a non-empty subject.
func (ti *TokenIssuer) Decode(token, expectedType string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ti.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || claims.TokenType != expectedType || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
