package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for every verification failure. Callers must
// not be able to tell a forged token from a malformed or expired one.
var ErrInvalidToken = errors.New("invalid token")

// TokenService issues and verifies signed identity tokens. The secret,
// algorithm and TTL come from configuration and do not change at runtime.
type TokenService struct {
	secret []byte
	method jwt.SigningMethod
	alg    string
	ttl    time.Duration
}

// NewTokenService creates a token service. Only HMAC algorithms are accepted.
func NewTokenService(secret, algorithm string, ttl time.Duration) (*TokenService, error) {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm: %s", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unsupported signing algorithm: %s", algorithm)
	}
	if secret == "" {
		return nil, fmt.Errorf("signing secret must not be empty")
	}

	return &TokenService{
		secret: []byte(secret),
		method: method,
		alg:    algorithm,
		ttl:    ttl,
	}, nil
}

// Issue creates a signed token whose subject is the given user id.
func (s *TokenService) Issue(subjectID string) (string, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(s.method, jwt.RegisteredClaims{
		Subject:   subjectID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	})

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Verify checks signature and expiry and returns the embedded subject id.
// All failure modes collapse to ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{s.alg}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// TTL reports the configured token lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}
