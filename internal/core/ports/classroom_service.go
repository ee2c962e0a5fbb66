package ports

import (
	"context"

	"github.com/colegio/school-system/internal/core/domain"
)

// ClassroomPage is one page of classrooms with pagination totals.
type ClassroomPage struct {
	Items       []*domain.Classroom
	TotalItems  int64
	TotalPages  int
	CurrentPage int
}

// ClassroomService defines use-case operations for classrooms.
type ClassroomService interface {
	List(ctx context.Context, page, limit int) (*ClassroomPage, error)
	// Get returns the classroom enriched with its students and subjects.
	Get(ctx context.Context, id string) (*domain.ClassroomDetail, error)
	GetByName(ctx context.Context, name string) (*domain.Classroom, error)
	Create(ctx context.Context, name string) (*domain.Classroom, error)
	Update(ctx context.Context, id, name string) (*domain.Classroom, error)
	Delete(ctx context.Context, id string) (*domain.Classroom, error)
}
