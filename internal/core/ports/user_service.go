package ports

import (
	"context"

	"github.com/colegio/school-system/internal/core/domain"
)

// CreateUserInput carries all data needed to create a user.
type CreateUserInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	Role        string
	ChildrenIDs []string
	ClassroomID string
}

// UpdateUserInput carries a partial user update. Empty fields are left
// untouched; a non-empty Password is re-hashed before persistence.
type UpdateUserInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	Role        string
	ChildrenIDs []string
	ClassroomID string
}

// UserPage is one page of users with pagination totals.
type UserPage struct {
	Items       []*domain.User
	TotalItems  int64
	TotalPages  int
	CurrentPage int
}

// UserService defines use-case operations for users.
type UserService interface {
	List(ctx context.Context, page, limit int) (*UserPage, error)
	// Get returns the user with its children resolved.
	Get(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) (*domain.User, error)
}
