package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"hirepulse/internal/domain/user"
)

// TokenProvider issues and verifies stateless HS256 bearer tokens. The secret
// is process-wide and read-only after startup; every instance sharing a token
// namespace must hold the same secret. Logout is client-side token discard.
type TokenProvider struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenProvider(secret string, ttl time.Duration) *TokenProvider {
	return &TokenProvider{secret: []byte(secret), ttl: ttl}
}

type Claims struct {
	Email string    `json:"sub"`
	Role  user.Role `json:"role"`
	Kind  string    `json:"kind,omitempty"`
	jwt.RegisteredClaims
}

const kindReset = "reset"

func (p *TokenProvider) Issue(account *user.User) (string, time.Time, error) {
	return p.issue(account, "", p.ttl)
}

// IssueReset creates a short-lived token usable only for password reset.
func (p *TokenProvider) IssueReset(account *user.User, ttl time.Duration) (string, time.Time, error) {
	return p.issue(account, kindReset, ttl)
}

func (p *TokenProvider) issue(account *user.User, kind string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(ttl)
	claims := Claims{
		Email: account.Email,
		Role:  account.Role,
		Kind:  kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.Email,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(p.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify rejects anything with a bad signature, wrong algorithm, or past
// expiry. No partial trust: a failure never yields claims.
func (p *TokenProvider) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return p.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Email == "" {
		claims.Email = claims.Subject
	}
	if claims.Email == "" {
		return nil, errors.New("token has no subject")
	}
	if claims.Kind == kindReset {
		return nil, errors.New("reset token is not valid for authentication")
	}
	return claims, nil
}

// VerifyReset accepts only reset-kind tokens.
func (p *TokenProvider) VerifyReset(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return p.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Kind != kindReset {
		return nil, errors.New("not a reset token")
	}
	if claims.Email == "" {
		claims.Email = claims.Subject
	}
	return claims, nil
}
