package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned by Verify for every failure mode: bad
// signature, malformed payload, wrong algorithm, or expiry. Callers must not
// be able to distinguish an expired token from a forged one.
var ErrInvalidToken = errors.New("invalid or expired token")

// TokenClaims is the payload carried by a session token: the subject email,
// the user's role, and the standard expiry/issued-at instants.
type TokenClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// TokenService issues and verifies signed, time-limited session tokens. The
// signing key and TTL are process-wide configuration, set once at startup.
type TokenService struct {
	key []byte
	ttl time.Duration
}

func NewTokenService(secret []byte, ttl time.Duration) *TokenService {
	return &TokenService{key: secret, ttl: ttl}
}

// TTL returns the configured token lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue produces a signed HS256 token for the given subject and role,
// expiring at now + the configured TTL.
func (s *TokenService) Issue(subject, role string) (string, error) {
	now := time.Now().UTC()
	claims := TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Role: role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
}

// Verify checks the token's signature and expiry and returns its claims.
// Expiry is exclusive of now: a token whose expiry instant has been reached
// is already invalid. All failures collapse into ErrInvalidToken.
func (s *TokenService) Verify(tokenStr string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims,
		func(t *jwt.Token) (interface{}, error) { return s.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" || claims.Role == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
