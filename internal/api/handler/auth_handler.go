package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/colegio/school-system/internal/api/metrics"
	"github.com/colegio/school-system/internal/core/domain"
	"github.com/colegio/school-system/internal/core/ports"
)

// AuthHandler handles the public login endpoint.
type AuthHandler struct {
	authService ports.AuthService
	audit       AuditSink
}

func NewAuthHandler(authService ports.AuthService, audit AuditSink) *AuthHandler {
	return &AuthHandler{authService: authService, audit: audit}
}

// Login authenticates a user and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /user/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "email and password are required"})
	}

	tok, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		// Locked and bad-credentials logins render the same body; only the
		// metric distinguishes them.
		switch {
		case errors.Is(err, domain.ErrLoginLocked):
			metrics.LoginsTotal.WithLabelValues("locked").Inc()
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("bad_credentials").Inc()
		default:
			return err
		}
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: domain.ErrInvalidCredentials.Error()})
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	recordAudit(h.audit, AuthContext{ID: user.ID, Role: user.Role}, "login", "session", "")

	return c.JSON(http.StatusOK, loginResponse{Token: tok})
}
