// Package token implements the signed bearer-token codec: HS256 JWTs
// carrying the subject username and its role set. Verification is a pure
// computation over the token, the shared secret and the caller-supplied
// clock, so no server-side session state is ever consulted.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lokesh-katari/auth-service/internal/core/domain"
)

// Claims is the payload embedded in every issued token.
type Claims struct {
	Roles []domain.Role `json:"roles"`
	jwt.RegisteredClaims
}

// Codec issues and verifies tokens with a shared symmetric secret.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec returns a Codec signing with secret and stamping issued tokens
// with the given time-to-live.
func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured token lifetime.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a token for subject with the given roles. The claim set is
// {sub, roles, iat=now, exp=now+TTL}.
func (c *Codec) Issue(subject string, roles []domain.Role, now time.Time) (string, error) {
	claims := Claims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Verify decodes tokenStr, recomputes the signature and validates the claim
// set against now. Every failure — wrong part count, undecodable segment,
// signature mismatch, foreign algorithm, expiry reached, missing subject or
// roles — collapses into domain.ErrTokenInvalid. Malformed input is a normal
// rejection, never a panic.
func (c *Codec) Verify(tokenStr string, now time.Time) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims,
		func(t *jwt.Token) (any, error) {
			if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return c.secret, nil
		},
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return nil, domain.ErrTokenInvalid
	}
	if claims.Subject == "" || len(claims.Roles) == 0 {
		return nil, domain.ErrTokenInvalid
	}
	for _, r := range claims.Roles {
		if !r.Valid() {
			return nil, domain.ErrTokenInvalid
		}
	}
	return claims, nil
}

// Subject runs the full Verify path and returns only the subject claim, for
// callers that need the caller's identity without re-checking roles.
func (c *Codec) Subject(tokenStr string, now time.Time) (string, error) {
	claims, err := c.Verify(tokenStr, now)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}
