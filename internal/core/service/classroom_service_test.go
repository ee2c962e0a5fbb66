package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/colegio/school-system/internal/core/domain"
	"github.com/colegio/school-system/internal/core/ports"
)

func subjectInput(name, classroomID, teacherID string) ports.SubjectInput {
	return ports.SubjectInput{Name: name, ClassroomID: classroomID, TeacherID: teacherID}
}

type stubClassroomRepo struct {
	byID   map[string]*domain.Classroom
	nextID int
}

func newStubClassroomRepo() *stubClassroomRepo {
	return &stubClassroomRepo{byID: make(map[string]*domain.Classroom)}
}

func (r *stubClassroomRepo) Create(_ context.Context, c *domain.Classroom) (*domain.Classroom, error) {
	clone := *c
	r.nextID++
	clone.ID = fmt.Sprintf("class-%d", r.nextID)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubClassroomRepo) FindByID(_ context.Context, id string) (*domain.Classroom, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrClassroomNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubClassroomRepo) FindByName(_ context.Context, name string) (*domain.Classroom, error) {
	for _, c := range r.byID {
		if c.Name == name {
			clone := *c
			return &clone, nil
		}
	}
	return nil, domain.ErrClassroomNotFound
}

func (r *stubClassroomRepo) List(_ context.Context, page, limit int) ([]*domain.Classroom, int64, error) {
	var all []*domain.Classroom
	for _, c := range r.byID {
		clone := *c
		all = append(all, &clone)
	}
	return all, int64(len(all)), nil
}

func (r *stubClassroomRepo) Update(_ context.Context, c *domain.Classroom) (*domain.Classroom, error) {
	if _, ok := r.byID[c.ID]; !ok {
		return nil, domain.ErrClassroomNotFound
	}
	clone := *c
	r.byID[c.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubClassroomRepo) Delete(_ context.Context, id string) (*domain.Classroom, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrClassroomNotFound
	}
	delete(r.byID, id)
	return c, nil
}

type stubSubjectRepo struct {
	byID   map[string]*domain.Subject
	nextID int
}

func newStubSubjectRepo() *stubSubjectRepo {
	return &stubSubjectRepo{byID: make(map[string]*domain.Subject)}
}

func (r *stubSubjectRepo) Create(_ context.Context, s *domain.Subject) (*domain.Subject, error) {
	clone := *s
	r.nextID++
	clone.ID = fmt.Sprintf("subj-%d", r.nextID)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubSubjectRepo) FindByID(_ context.Context, id string) (*domain.Subject, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrSubjectNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubSubjectRepo) FindByClassroom(_ context.Context, classroomID string) ([]*domain.Subject, error) {
	var out []*domain.Subject
	for _, s := range r.byID {
		if s.ClassroomID == classroomID {
			clone := *s
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubSubjectRepo) List(_ context.Context, page, limit int) ([]*domain.Subject, int64, error) {
	var all []*domain.Subject
	for _, s := range r.byID {
		clone := *s
		all = append(all, &clone)
	}
	return all, int64(len(all)), nil
}

func (r *stubSubjectRepo) Update(_ context.Context, s *domain.Subject) (*domain.Subject, error) {
	if _, ok := r.byID[s.ID]; !ok {
		return nil, domain.ErrSubjectNotFound
	}
	clone := *s
	r.byID[s.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubSubjectRepo) Delete(_ context.Context, id string) (*domain.Subject, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrSubjectNotFound
	}
	delete(r.byID, id)
	return s, nil
}

func TestClassroomService_Get_EnrichesStudentsAndSubjects(t *testing.T) {
	classroomRepo := newStubClassroomRepo()
	userRepo := newStubUserRepo()
	subjectRepo := newStubSubjectRepo()
	svc := NewClassroomService(classroomRepo, userRepo, subjectRepo, zerolog.Nop())

	classroom, err := svc.Create(context.Background(), "Primero A")
	if err != nil {
		t.Fatalf("create classroom: %v", err)
	}

	if _, err := userRepo.Create(context.Background(), &domain.User{
		Email: "st@s.test", FirstName: "Stu", LastName: "Dent",
		Role: domain.RoleStudent, ClassroomID: classroom.ID,
	}); err != nil {
		t.Fatalf("seed student: %v", err)
	}
	if _, err := subjectRepo.Create(context.Background(), &domain.Subject{
		Name: "Matematicas", ClassroomID: classroom.ID, TeacherID: "t1",
	}); err != nil {
		t.Fatalf("seed subject: %v", err)
	}

	detail, err := svc.Get(context.Background(), classroom.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if len(detail.Students) != 1 {
		t.Fatalf("expected 1 student, got %d", len(detail.Students))
	}
	if len(detail.Subjects) != 1 {
		t.Fatalf("expected 1 subject, got %d", len(detail.Subjects))
	}
}

func TestClassroomService_Get_NotFound(t *testing.T) {
	svc := NewClassroomService(newStubClassroomRepo(), newStubUserRepo(), newStubSubjectRepo(), zerolog.Nop())

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrClassroomNotFound) {
		t.Fatalf("expected ErrClassroomNotFound, got %v", err)
	}
}

func TestSubjectService_UpdatePartial(t *testing.T) {
	repo := newStubSubjectRepo()
	svc := NewSubjectService(repo, zerolog.Nop())

	created, err := svc.Create(context.Background(), subjectInput("Lengua", "c1", "t1"))
	if err != nil {
		t.Fatalf("create subject: %v", err)
	}

	updated, err := svc.Update(context.Background(), created.ID, subjectInput("", "", "t2"))
	if err != nil {
		t.Fatalf("update subject: %v", err)
	}
	if updated.Name != "Lengua" || updated.ClassroomID != "c1" {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
	if updated.TeacherID != "t2" {
		t.Fatalf("teacher not updated: %s", updated.TeacherID)
	}
}
