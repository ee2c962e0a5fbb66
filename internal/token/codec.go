// Package token issues and verifies the stateless bearer tokens used by the
// API. A token carries only the user id and email; role and existence are
// re-resolved from the database on every request.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for every verification failure: bad signature,
// malformed structure, expired, wrong algorithm. Callers get one error so the
// response cannot leak which check failed.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the identity payload embedded in a token.
type Claims struct {
	UserID string
	Email  string
}

// Codec signs and verifies HS256 tokens with a fixed secret and TTL.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec builds a Codec. A non-positive ttl falls back to 24h.
func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// Issue creates a signed token embedding the user id and email, with a fresh
// issued-at and an expiry of now + TTL.
func (c *Codec) Issue(userID, email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"iat":     now.Unix(),
		"exp":     now.Add(c.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Verify checks the signature and expiry and returns the embedded claims.
func (c *Codec) Verify(tok string) (*Claims, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	userID, _ := claims["user_id"].(string)
	email, _ := claims["email"].(string)
	if userID == "" || email == "" {
		return nil, ErrInvalidToken
	}

	return &Claims{UserID: userID, Email: email}, nil
}
