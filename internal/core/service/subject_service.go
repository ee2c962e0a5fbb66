package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/colegio/school-system/internal/core/domain"
	"github.com/colegio/school-system/internal/core/ports"
)

// SubjectService implements subject CRUD.
type SubjectService struct {
	repo ports.SubjectRepository
	log  zerolog.Logger
}

func NewSubjectService(repo ports.SubjectRepository, log zerolog.Logger) *SubjectService {
	return &SubjectService{repo: repo, log: log}
}

func (s *SubjectService) List(ctx context.Context, page, limit int) (*ports.SubjectPage, error) {
	page, limit = normalizePage(page, limit)

	subjects, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}

	return &ports.SubjectPage{
		Items:       subjects,
		TotalItems:  total,
		TotalPages:  totalPages(total, limit),
		CurrentPage: page,
	}, nil
}

func (s *SubjectService) Get(ctx context.Context, id string) (*domain.Subject, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *SubjectService) Create(ctx context.Context, input ports.SubjectInput) (*domain.Subject, error) {
	now := time.Now().UTC()
	subject := &domain.Subject{
		Name:        input.Name,
		ClassroomID: input.ClassroomID,
		TeacherID:   input.TeacherID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, subject)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("subject_id", created.ID).Str("name", created.Name).Msg("subject created")
	return created, nil
}

func (s *SubjectService) Update(ctx context.Context, id string, input ports.SubjectInput) (*domain.Subject, error) {
	subject, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		subject.Name = input.Name
	}
	if input.ClassroomID != "" {
		subject.ClassroomID = input.ClassroomID
	}
	if input.TeacherID != "" {
		subject.TeacherID = input.TeacherID
	}
	subject.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, subject)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("subject_id", id).Msg("subject updated")
	return updated, nil
}

func (s *SubjectService) Delete(ctx context.Context, id string) (*domain.Subject, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("subject_id", id).Msg("subject deleted")
	return deleted, nil
}
