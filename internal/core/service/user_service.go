package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/colegio/school-system/internal/core/domain"
	"github.com/colegio/school-system/internal/core/ports"
)

// UserService implements user CRUD with password hashing on write.
type UserService struct {
	repo       ports.UserRepository
	bcryptCost int
	log        zerolog.Logger
}

func NewUserService(repo ports.UserRepository, bcryptCost int, log zerolog.Logger) *UserService {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{repo: repo, bcryptCost: bcryptCost, log: log}
}

func (s *UserService) List(ctx context.Context, page, limit int) (*ports.UserPage, error) {
	page, limit = normalizePage(page, limit)

	users, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}

	return &ports.UserPage{
		Items:       users,
		TotalItems:  total,
		TotalPages:  totalPages(total, limit),
		CurrentPage: page,
	}, nil
}

// Get returns a single user with its children resolved.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if len(user.ChildrenIDs) > 0 {
		children, err := s.repo.FindByIDs(ctx, user.ChildrenIDs)
		if err != nil {
			return nil, err
		}
		user.Children = children
	}
	return user, nil
}

func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	role := domain.Role(input.Role)
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        input.Email,
		PasswordHash: string(hash),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         role,
		ChildrenIDs:  input.ChildrenIDs,
		ClassroomID:  input.ClassroomID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user created")
	return created, nil
}

// Update applies a partial update. The password is only re-hashed when a new
// plaintext value is supplied; otherwise the stored hash is kept as-is.
func (s *UserService) Update(ctx context.Context, id string, input ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != "" {
		user.Email = input.Email
	}
	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}
	if input.Role != "" {
		role := domain.Role(input.Role)
		if !role.Valid() {
			return nil, domain.ErrInvalidRole
		}
		user.Role = role
	}
	if input.ChildrenIDs != nil {
		user.ChildrenIDs = input.ChildrenIDs
	}
	if input.ClassroomID != "" {
		user.ClassroomID = input.ClassroomID
	}
	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", updated.ID).Msg("user updated")
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, id string) (*domain.User, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", id).Msg("user deleted")
	return deleted, nil
}
