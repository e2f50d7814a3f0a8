package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type contextKey string

const principalKey contextKey = "principal"

// Principal is the authenticated identity resolved by the Guard middleware
// and passed to handlers through the request context. Role and FullName come
// from the stored user record, not the token payload.
type Principal struct {
	Email    string
	Role     string
	FullName string
}

// AccountResolver maps a verified token subject back to a live account.
// identity.Service implements it; the indirection keeps this package free of
// domain imports and lets tests substitute a stub.
type AccountResolver interface {
	ResolveAccount(ctx context.Context, email string) (*Principal, error)
}

// AccountResolverFunc is a function adapter for AccountResolver.
type AccountResolverFunc func(ctx context.Context, email string) (*Principal, error)

func (f AccountResolverFunc) ResolveAccount(ctx context.Context, email string) (*Principal, error) {
	return f(ctx, email)
}

// Guard returns middleware that authenticates a request from its bearer
// token. It rejects missing or malformed Authorization headers before any
// token parsing, verifies the token, and confirms the subject still maps to
// a stored account. Every failure is the same 401 with a Bearer challenge;
// a token that outlived its account is deliberately indistinguishable from a
// forged one. Role checks are left to RequireRole.
func Guard(tokens *TokenService, accounts AccountResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return unauthorized(c, "missing authorization header")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return unauthorized(c, "invalid authorization format")
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				return unauthorized(c, "invalid or expired token")
			}

			principal, err := accounts.ResolveAccount(c.Request().Context(), claims.Subject)
			if err != nil || principal == nil {
				return unauthorized(c, "invalid or expired token")
			}

			ctx := context.WithValue(c.Request().Context(), principalKey, principal)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// PrincipalFromContext returns the authenticated principal set by Guard, or
// nil when the request was not authenticated.
func PrincipalFromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalKey).(*Principal)
	return p
}

// ContextWithPrincipal returns a context carrying the given principal.
// Intended for tests exercising guarded handlers directly.
func ContextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func unauthorized(c echo.Context, reason string) error {
	c.Response().Header().Set("WWW-Authenticate", "Bearer")
	return echo.NewHTTPError(http.StatusUnauthorized, reason)
}
