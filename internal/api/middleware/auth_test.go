package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/colegio/school-system/internal/core/domain"
	"github.com/colegio/school-system/internal/token"
)

// fakeUserRepo implements just enough of ports.UserRepository for the gate.
type fakeUserRepo struct {
	users map[string]*domain.User
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) Create(context.Context, *domain.User) (*domain.User, error) { return nil, nil }
func (r *fakeUserRepo) FindByID(context.Context, string) (*domain.User, error)     { return nil, nil }
func (r *fakeUserRepo) FindByIDs(context.Context, []string) ([]*domain.User, error) {
	return nil, nil
}
func (r *fakeUserRepo) FindByEmailWithPassword(context.Context, string) (*domain.User, error) {
	return nil, nil
}
func (r *fakeUserRepo) FindStudentsByClassroom(context.Context, string) ([]*domain.User, error) {
	return nil, nil
}
func (r *fakeUserRepo) List(context.Context, int, int) ([]*domain.User, int64, error) {
	return nil, 0, nil
}
func (r *fakeUserRepo) Update(context.Context, *domain.User) (*domain.User, error) { return nil, nil }
func (r *fakeUserRepo) Delete(context.Context, string) (*domain.User, error)       { return nil, nil }

func testGate(users map[string]*domain.User) (*token.Codec, echo.MiddlewareFunc) {
	codec := token.NewCodec("secret", time.Hour)
	return codec, Auth(codec, &fakeUserRepo{users: users})
}

func TestAuth_ValidToken_InjectsIdentity(t *testing.T) {
	e := echo.New()
	codec, mw := testGate(map[string]*domain.User{
		"alice@school.test": {ID: "u1", Email: "alice@school.test", Role: domain.RoleAdmin},
	})

	signed, err := codec.Issue("u1", "alice@school.test")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := mw(func(c echo.Context) error {
		called = true
		if c.Get(CtxUserID) != "u1" {
			t.Fatalf("user id not set")
		}
		if c.Get(CtxRole) != domain.RoleAdmin {
			t.Fatalf("role not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	e := echo.New()
	_, mw := testGate(nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_NonBearerScheme(t *testing.T) {
	e := echo.New()
	_, mw := testGate(nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	e := echo.New()
	_, mw := testGate(nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

// A structurally valid, unexpired token whose user has since been deleted is
// denied exactly like an invalid token.
func TestAuth_DeletedUser(t *testing.T) {
	e := echo.New()
	codec, mw := testGate(map[string]*domain.User{}) // empty store

	signed, err := codec.Issue("u9", "ghost@school.test")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireRoles_Allows(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(CtxRole, domain.RoleTeacher)

	called := false
	mw := RequireRoles(domain.RoleAdmin, domain.RoleTeacher)
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

// Role mismatches collapse to the same 401 as a missing token.
func TestRequireRoles_DeniesWith401(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(CtxRole, domain.RoleStudent)

	mw := RequireRoles(domain.RoleAdmin, domain.RoleTeacher)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
