package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/colegio/school-system/internal/core/domain"
	"github.com/colegio/school-system/internal/core/ports"
)

// ClassroomService implements classroom CRUD and the enriched detail view.
type ClassroomService struct {
	repo        ports.ClassroomRepository
	userRepo    ports.UserRepository
	subjectRepo ports.SubjectRepository
	log         zerolog.Logger
}

func NewClassroomService(repo ports.ClassroomRepository, userRepo ports.UserRepository, subjectRepo ports.SubjectRepository, log zerolog.Logger) *ClassroomService {
	return &ClassroomService{repo: repo, userRepo: userRepo, subjectRepo: subjectRepo, log: log}
}

func (s *ClassroomService) List(ctx context.Context, page, limit int) (*ports.ClassroomPage, error) {
	page, limit = normalizePage(page, limit)

	classrooms, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}

	return &ports.ClassroomPage{
		Items:       classrooms,
		TotalItems:  total,
		TotalPages:  totalPages(total, limit),
		CurrentPage: page,
	}, nil
}

// Get resolves the classroom plus its students and subjects.
func (s *ClassroomService) Get(ctx context.Context, id string) (*domain.ClassroomDetail, error) {
	classroom, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	students, err := s.userRepo.FindStudentsByClassroom(ctx, classroom.ID)
	if err != nil {
		return nil, err
	}
	subjects, err := s.subjectRepo.FindByClassroom(ctx, classroom.ID)
	if err != nil {
		return nil, err
	}

	return &domain.ClassroomDetail{
		Classroom: *classroom,
		Students:  students,
		Subjects:  subjects,
	}, nil
}

func (s *ClassroomService) GetByName(ctx context.Context, name string) (*domain.Classroom, error) {
	return s.repo.FindByName(ctx, name)
}

func (s *ClassroomService) Create(ctx context.Context, name string) (*domain.Classroom, error) {
	now := time.Now().UTC()
	classroom := &domain.Classroom{
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, classroom)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("classroom_id", created.ID).Str("name", created.Name).Msg("classroom created")
	return created, nil
}

func (s *ClassroomService) Update(ctx context.Context, id, name string) (*domain.Classroom, error) {
	classroom, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != "" {
		classroom.Name = name
	}
	classroom.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, classroom)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("classroom_id", id).Msg("classroom updated")
	return updated, nil
}

func (s *ClassroomService) Delete(ctx context.Context, id string) (*domain.Classroom, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("classroom_id", id).Msg("classroom deleted")
	return deleted, nil
}
