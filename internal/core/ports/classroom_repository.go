package ports

import (
	"context"

	"github.com/colegio/school-system/internal/core/domain"
)

// ClassroomRepository defines persistence operations for classrooms.
type ClassroomRepository interface {
	Create(ctx context.Context, classroom *domain.Classroom) (*domain.Classroom, error)
	FindByID(ctx context.Context, id string) (*domain.Classroom, error)
	FindByName(ctx context.Context, name string) (*domain.Classroom, error)
	List(ctx context.Context, page, limit int) ([]*domain.Classroom, int64, error)
	Update(ctx context.Context, classroom *domain.Classroom) (*domain.Classroom, error)
	Delete(ctx context.Context, id string) (*domain.Classroom, error)
}
