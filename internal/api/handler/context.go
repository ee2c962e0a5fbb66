package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/colegio/school-system/internal/api/middleware"
	"github.com/colegio/school-system/internal/core/domain"
)

// AuthContext is the per-request authenticated identity injected by the Auth
// middleware. It is rebuilt on every request and never outlives it.
type AuthContext struct {
	ID   string
	Role domain.Role
}

// Identity extracts the authenticated identity. An empty role means the Auth
// middleware did not run; callers treat that as a denial.
func Identity(c echo.Context) (AuthContext, error) {
	role, _ := c.Get(middleware.CtxRole).(domain.Role)
	if role == "" {
		return AuthContext{}, middleware.Deny("missing_identity")
	}
	id, _ := c.Get(middleware.CtxUserID).(string)
	return AuthContext{ID: id, Role: role}, nil
}

// allowSelfOr grants access when the caller's id equals targetID or the
// caller's role is in the allow-list. Used by the single-resource reads that
// permit self-access on top of the role policy.
func allowSelfOr(identity AuthContext, targetID string, roles ...domain.Role) bool {
	if identity.ID == targetID {
		return true
	}
	for _, r := range roles {
		if identity.Role == r {
			return true
		}
	}
	return false
}
