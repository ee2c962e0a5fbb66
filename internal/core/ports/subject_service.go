package ports

import (
	"context"

	"github.com/colegio/school-system/internal/core/domain"
)

// SubjectInput carries the data needed to create or update a subject.
type SubjectInput struct {
	Name        string
	ClassroomID string
	TeacherID   string
}

// SubjectPage is one page of subjects with pagination totals.
type SubjectPage struct {
	Items       []*domain.Subject
	TotalItems  int64
	TotalPages  int
	CurrentPage int
}

// SubjectService defines use-case operations for subjects.
type SubjectService interface {
	List(ctx context.Context, page, limit int) (*SubjectPage, error)
	Get(ctx context.Context, id string) (*domain.Subject, error)
	Create(ctx context.Context, input SubjectInput) (*domain.Subject, error)
	Update(ctx context.Context, id string, input SubjectInput) (*domain.Subject, error)
	Delete(ctx context.Context, id string) (*domain.Subject, error)
}
