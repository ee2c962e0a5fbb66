package ports

import (
	"context"

	"github.com/colegio/school-system/internal/core/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
	// FindByEmail returns the user without its password hash, mirroring the
	// default projection used everywhere outside the login path.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByEmailWithPassword additionally loads the password hash. Only the
	// login use case may call it.
	FindByEmailWithPassword(ctx context.Context, email string) (*domain.User, error)
	FindStudentsByClassroom(ctx context.Context, classroomID string) ([]*domain.User, error)
	// List returns one page of users plus the total count.
	List(ctx context.Context, page, limit int) ([]*domain.User, int64, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) (*domain.User, error)
}
