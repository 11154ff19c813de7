package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for every verification failure. Callers must
// not distinguish between a malformed token, a bad signature, or an expired
// one; the API surfaces all of them identically as unauthorized.
var ErrInvalidToken = errors.New("invalid token")

// JWTManager issues and verifies HS256 session tokens bound to a user
// identity (the email). Tokens stay valid for the full TTL once issued;
// there is no revocation list.
type JWTManager struct {
	Secret []byte
	TTL    time.Duration
}

func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	return &JWTManager{Secret: []byte(secret), TTL: ttl}
}

// Generate signs a token whose subject is the given identity.
func (m *JWTManager) Generate(identity string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(m.TTL)
	claims := &jwt.RegisteredClaims{
		Subject:   identity,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.Secret)
	return s, exp, err
}

// Verify recomputes the signature and checks expiry, returning the embedded
// identity. Any failure collapses into ErrInvalidToken.
func (m *JWTManager) Verify(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.Secret, nil
	})
	if err != nil || !tkn.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
