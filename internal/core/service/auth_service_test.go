package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/colegio/school-system/internal/core/domain"
	"github.com/colegio/school-system/internal/token"
)

type stubUserRepo struct {
	byEmail map[string]*domain.User
	byID    map[string]*domain.User
	nextID  int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byEmail: make(map[string]*domain.User),
		byID:    make(map[string]*domain.User),
	}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.byEmail[user.Email]; exists {
		return nil, domain.ErrEmailTaken
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		r.nextID++
		copy.ID = fmt.Sprintf("user-%d", r.nextID)
	}
	r.byEmail[copy.Email] = cloneUser(copy)
	r.byID[copy.ID] = r.byEmail[copy.Email]
	stripped := cloneUser(copy)
	stripped.PasswordHash = ""
	return stripped, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	found := cloneUser(u)
	found.PasswordHash = ""
	return found, nil
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.User, error) {
	var out []*domain.User
	for _, id := range ids {
		if u, ok := r.byID[id]; ok {
			found := cloneUser(u)
			found.PasswordHash = ""
			out = append(out, found)
		}
	}
	return out, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	found := cloneUser(u)
	found.PasswordHash = ""
	return found, nil
}

func (r *stubUserRepo) FindByEmailWithPassword(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindStudentsByClassroom(_ context.Context, classroomID string) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.byID {
		if u.Role == domain.RoleStudent && u.ClassroomID == classroomID {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *stubUserRepo) List(_ context.Context, page, limit int) ([]*domain.User, int64, error) {
	var all []*domain.User
	for _, u := range r.byID {
		found := cloneUser(u)
		found.PasswordHash = ""
		all = append(all, found)
	}
	total := int64(len(all))
	start := (page - 1) * limit
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	stored, ok := r.byID[user.ID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	delete(r.byEmail, stored.Email)
	copy := cloneUser(user)
	if copy.PasswordHash == "" {
		copy.PasswordHash = stored.PasswordHash
	}
	r.byEmail[copy.Email] = copy
	r.byID[copy.ID] = copy
	stripped := cloneUser(copy)
	stripped.PasswordHash = ""
	return stripped, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	delete(r.byID, id)
	delete(r.byEmail, u.Email)
	return cloneUser(u), nil
}

type stubThrottle struct {
	locked   bool
	failures int
	cleared  int
}

func (t *stubThrottle) IsLocked(_ context.Context, _ string) (bool, error) { return t.locked, nil }
func (t *stubThrottle) RecordFailure(_ context.Context, _ string) error {
	t.failures++
	return nil
}
func (t *stubThrottle) Clear(_ context.Context, _ string) error {
	t.cleared++
	return nil
}

func seedUser(t *testing.T, repo *stubUserRepo, email, password string, role domain.Role) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if _, err := repo.Create(context.Background(), &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    "Test",
		LastName:     "User",
		Role:         role,
	}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "carol@school.test", "s3cret99", domain.RoleAdmin)

	codec := token.NewCodec("secret", time.Hour)
	throttle := &stubThrottle{}
	svc := NewAuthService(repo, codec, throttle, zerolog.Nop())

	tok, user, err := svc.Login(context.Background(), "carol@school.test", "s3cret99")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if tok == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.Role != domain.RoleAdmin {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.PasswordHash != "" {
		t.Fatalf("password hash leaked out of login")
	}
	if throttle.cleared != 1 {
		t.Fatalf("expected throttle cleared once, got %d", throttle.cleared)
	}

	claims, err := codec.Verify(tok)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.Email != "carol@school.test" {
		t.Fatalf("unexpected email claim: %s", claims.Email)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "dave@school.test", "goodpass", domain.RoleStudent)

	throttle := &stubThrottle{}
	svc := NewAuthService(repo, token.NewCodec("secret", time.Hour), throttle, zerolog.Nop())

	_, _, err := svc.Login(context.Background(), "dave@school.test", "badpass")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if throttle.failures != 1 {
		t.Fatalf("expected one recorded failure, got %d", throttle.failures)
	}
}

func TestAuthService_Login_UnknownEmail_SameError(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "dave@school.test", "goodpass", domain.RoleStudent)

	svc := NewAuthService(repo, token.NewCodec("secret", time.Hour), nil, zerolog.Nop())

	_, _, unknownErr := svc.Login(context.Background(), "ghost@school.test", "whatever")
	_, _, wrongErr := svc.Login(context.Background(), "dave@school.test", "badpass")

	if !errors.Is(unknownErr, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknownErr)
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Fatalf("unknown-email and wrong-password errors differ: %q vs %q", unknownErr, wrongErr)
	}
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), token.NewCodec("secret", time.Hour), nil, zerolog.Nop())

	if _, _, err := svc.Login(context.Background(), "", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "a@b.test", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_Locked(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "eve@school.test", "goodpass", domain.RoleParent)

	throttle := &stubThrottle{locked: true}
	svc := NewAuthService(repo, token.NewCodec("secret", time.Hour), throttle, zerolog.Nop())

	_, _, err := svc.Login(context.Background(), "eve@school.test", "goodpass")
	if !errors.Is(err, domain.ErrLoginLocked) {
		t.Fatalf("expected ErrLoginLocked, got %v", err)
	}
}
