package session

import (
	"fmt"
	"time"

	"finance/internal/uuid"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "finance"

// Claims is the payload of the session cookie. The session id travels as
// the standard jti claim.
type Claims struct {
	jwt.RegisteredClaims
}

// Codec signs and verifies session cookie tokens.
type Codec struct {
	key []byte
}

// NewCodec creates a codec using an HMAC secret.
func NewCodec(secret string) *Codec {
	return &Codec{key: []byte(secret)}
}

// Encode returns a signed token for the session.
func (c *Codec) Encode(sess *Session) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sess.ID,
			Subject:   sess.UserID,
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.key)
}

// Decode verifies the token and returns the session id it names.
func (c *Codec) Decode(token string) (string, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.key, nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil || !parsed.Valid {
		return "", fmt.Errorf("invalid session token")
	}
	if !uuid.IsValid(claims.ID) {
		return "", fmt.Errorf("invalid session id")
	}
	return claims.ID, nil
}
