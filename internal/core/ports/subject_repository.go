package ports

import (
	"context"

	"github.com/colegio/school-system/internal/core/domain"
)

// SubjectRepository defines persistence operations for subjects.
type SubjectRepository interface {
	Create(ctx context.Context, subject *domain.Subject) (*domain.Subject, error)
	FindByID(ctx context.Context, id string) (*domain.Subject, error)
	FindByClassroom(ctx context.Context, classroomID string) ([]*domain.Subject, error)
	List(ctx context.Context, page, limit int) ([]*domain.Subject, int64, error)
	Update(ctx context.Context, subject *domain.Subject) (*domain.Subject, error)
	Delete(ctx context.Context, id string) (*domain.Subject, error)
}
