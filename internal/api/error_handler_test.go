package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/colegio/school-system/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	return rec.Code, body["error"]
}

func TestErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"not authorized", domain.ErrNotAuthorized, 401, "not authorized to perform this operation"},
		{"invalid credentials", domain.ErrInvalidCredentials, 401, "invalid email or password"},
		{"locked login hides its cause", domain.ErrLoginLocked, 401, "invalid email or password"},
		{"user not found", domain.ErrUserNotFound, 404, "user not found"},
		{"classroom not found", domain.ErrClassroomNotFound, 404, "classroom not found"},
		{"subject not found", domain.ErrSubjectNotFound, 404, "subject not found"},
		{"email taken", domain.ErrEmailTaken, 409, domain.ErrEmailTaken.Error()},
		{"invalid role", domain.ErrInvalidRole, 422, domain.ErrInvalidRole.Error()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, msg := renderError(t, tc.err)
			if code != tc.wantCode {
				t.Fatalf("got status %d, want %d", code, tc.wantCode)
			}
			if msg != tc.wantMsg {
				t.Fatalf("got message %q, want %q", msg, tc.wantMsg)
			}
		})
	}
}

func TestErrorHandler_EchoErrorPassthrough(t *testing.T) {
	code, msg := renderError(t, echo.NewHTTPError(http.StatusUnauthorized, "not authorized to perform this operation"))
	if code != http.StatusUnauthorized {
		t.Fatalf("got status %d, want 401", code)
	}
	if msg != "not authorized to perform this operation" {
		t.Fatalf("got message %q", msg)
	}
}

func TestErrorHandler_UnexpectedErrorHidesDetails(t *testing.T) {
	code, msg := renderError(t, errors.New("mongo: connection reset"))
	if code != http.StatusInternalServerError {
		t.Fatalf("got status %d, want 500", code)
	}
	if msg != "internal server error" {
		t.Fatalf("got message %q, want generic message", msg)
	}
}
