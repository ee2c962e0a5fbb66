// Command seed wipes the users, classrooms and subjects collections and
// loads a small fixture dataset for local development.
package main

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/colegio/school-system/internal/core/domain"
	"github.com/colegio/school-system/internal/infrastructure/db/mongo"
	"github.com/colegio/school-system/internal/pkg/config"
	"github.com/colegio/school-system/pkg/logger"
)

type userFixture struct {
	firstName string
	lastName  string
	email     string
	password  string
	role      domain.Role
}

var userFixtures = []userFixture{
	{"Antonio", "Perez", "antonio@gmail.com", "12345678", domain.RoleStudent},
	{"Lara", "Alcaráz", "lara@gmail.com", "87654321", domain.RoleStudent},
	{"Leon", "López", "leon@gmail.com", "00000000", domain.RoleStudent},
	{"Virginia", "Alonso", "virg@gmail.com", "11111111", domain.RoleStudent},
	{"Ernesto", "Sevilla", "ernesto@gmail.com", "22222222", domain.RoleParent},
	{"Ana", "Obregón", "ana@gmail.com", "33333333", domain.RoleParent},
	{"Francisco", "Bueno", "frank@gmail.com", "44444444", domain.RoleTeacher},
	{"Toni", "Moreno", "toni@gmail.com", "55555555", domain.RoleTeacher},
	{"Antonio", "Alcaráz", "admin@gmail.com", "55555555", domain.RoleAdmin},
}

var classroomFixtures = []string{"Classroom 1A", "Classroom 2B"}

var subjectFixtures = []string{"Mathematics", "Natural Science"}

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	for _, name := range []string{"users", "classrooms", "subjects"} {
		if err := db.Collection(name).Drop(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("drop failed")
		}
	}
	log.Info().Msg("collections dropped")

	userRepo := mongo.NewUserRepository(db)
	classroomRepo := mongo.NewClassroomRepository(db)
	subjectRepo := mongo.NewSubjectRepository(db)

	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user indexes failed")
	}
	if err := subjectRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("subject indexes failed")
	}

	now := time.Now().UTC()

	var students, teachers []*domain.User
	for _, f := range userFixtures {
		hash, err := bcrypt.GenerateFromPassword([]byte(f.password), cfg.BcryptCost)
		if err != nil {
			log.Fatal().Err(err).Msg("password hash failed")
		}
		created, err := userRepo.Create(ctx, &domain.User{
			Email:        f.email,
			PasswordHash: string(hash),
			FirstName:    f.firstName,
			LastName:     f.lastName,
			Role:         f.role,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			log.Fatal().Err(err).Str("email", f.email).Msg("user insert failed")
		}
		switch f.role {
		case domain.RoleStudent:
			students = append(students, created)
		case domain.RoleTeacher:
			teachers = append(teachers, created)
		}
	}
	log.Info().Int("count", len(userFixtures)).Msg("users created")

	var classrooms []*domain.Classroom
	for _, name := range classroomFixtures {
		created, err := classroomRepo.Create(ctx, &domain.Classroom{
			Name:      name,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			log.Fatal().Err(err).Str("name", name).Msg("classroom insert failed")
		}
		classrooms = append(classrooms, created)
	}
	log.Info().Int("count", len(classrooms)).Msg("classrooms created")

	// Each subject is taught by one teacher in one classroom, and the
	// students of that classroom are enrolled by their classroom reference.
	for i, name := range subjectFixtures {
		if i >= len(teachers) || i >= len(classrooms) {
			break
		}
		if _, err := subjectRepo.Create(ctx, &domain.Subject{
			Name:        name,
			ClassroomID: classrooms[i].ID,
			TeacherID:   teachers[i].ID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}); err != nil {
			log.Fatal().Err(err).Str("name", name).Msg("subject insert failed")
		}
	}
	log.Info().Int("count", len(subjectFixtures)).Msg("subjects created")

	// Spread the students across the classrooms.
	for i, student := range students {
		student.ClassroomID = classrooms[i%len(classrooms)].ID
		student.UpdatedAt = now
		if _, err := userRepo.Update(ctx, student); err != nil {
			log.Fatal().Err(err).Str("email", student.Email).Msg("student assignment failed")
		}
	}
	log.Info().Msg("students assigned to classrooms")

	log.Info().Msg("seed completed")
}
