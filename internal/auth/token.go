package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	appErrors "identity-service/pkg/errors"
)

// Claims carried by an issued bearer token: subject is the account email,
// Role the single role label attached at registration.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// TokenService signs and verifies stateless bearer tokens. The signing key
// and validity are process-wide configuration; expiry is the only bound on
// token lifetime (no revocation list).
type TokenService struct {
	secret []byte
	ttl    time.Duration
	clock  Clock
}

func NewTokenService(secret []byte, ttl time.Duration, clock Clock) *TokenService {
	return &TokenService{
		secret: secret,
		ttl:    ttl,
		clock:  clock,
	}
}

// Issue creates a signed token for the given subject and role.
func (s *TokenService) Issue(email, role string) (string, time.Time, error) {
	now := s.clock.Now()
	expiresAt := now.Add(s.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Role: role,
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// Verify checks signature and expiry, returning the embedded claims.
// Expired tokens and tampered/malformed tokens fail with distinct kinds
// (appErrors.ErrTokenExpired vs appErrors.ErrTokenInvalid); callers expose
// both as unauthenticated.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithTimeFunc(s.clock.Now),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, appErrors.ErrTokenExpired
		}
		return nil, appErrors.ErrTokenInvalid
	}

	if !token.Valid {
		return nil, appErrors.ErrTokenInvalid
	}

	return claims, nil
}
