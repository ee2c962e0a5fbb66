package ports

import (
	"context"

	"github.com/colegio/school-system/internal/core/domain"
)

// AuthService authenticates credentials and issues bearer tokens.
type AuthService interface {
	// Login verifies email+password and returns a signed token plus the
	// authenticated user. Unknown email and wrong password both fail with
	// domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
