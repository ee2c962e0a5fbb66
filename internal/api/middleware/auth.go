package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/colegio/school-system/internal/api/metrics"
	"github.com/colegio/school-system/internal/core/domain"
	"github.com/colegio/school-system/internal/core/ports"
	"github.com/colegio/school-system/internal/token"
)

// Context keys set by Auth and read by the handlers.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// deniedMessage is the single body used for every authorization failure.
// Missing token, bad token, deleted user and insufficient role are all
// rendered identically so the response leaks nothing about the cause.
const deniedMessage = "not authorized to perform this operation"

// Deny returns the uniform 401 used across the whole authorization surface.
func Deny(reason string) error {
	metrics.AuthDenialsTotal.WithLabelValues(reason).Inc()
	return echo.NewHTTPError(http.StatusUnauthorized, deniedMessage)
}

// Auth validates the bearer token and injects the authenticated identity
// into the request context. The user is re-resolved from the store on every
// request: a token for a deleted user is as dead as a forged one.
func Auth(codec *token.Codec, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return Deny("missing_token")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return Deny("missing_token")
			}

			claims, err := codec.Verify(parts[1])
			if err != nil {
				return Deny("invalid_token")
			}

			user, err := users.FindByEmail(c.Request().Context(), claims.Email)
			if err != nil {
				return Deny("unknown_identity")
			}

			c.Set(CtxUserID, user.ID)
			c.Set(CtxRole, user.Role)

			return next(c)
		}
	}
}

// RequireRoles enforces a declarative role allow-list on a route. A mismatch
// renders the same 401 denial as a missing or invalid token.
func RequireRoles(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(domain.Role)
			if _, ok := allowed[role]; !ok {
				return Deny("insufficient_role")
			}
			return next(c)
		}
	}
}
