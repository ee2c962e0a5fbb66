package domain

import "errors"

var (
	// ErrNotAuthorized covers every authorization failure: missing or
	// invalid token, token for a deleted user, and insufficient role.
	// They are deliberately indistinguishable to the caller.
	ErrNotAuthorized = errors.New("not authorized to perform this operation")

	// ErrInvalidCredentials is returned on login for both an unknown email
	// and a wrong password, without saying which.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrLoginLocked is returned when an email has accumulated too many
	// failed login attempts inside the throttle window.
	ErrLoginLocked = errors.New("too many failed login attempts")

	ErrUserNotFound      = errors.New("user not found")
	ErrClassroomNotFound = errors.New("classroom not found")
	ErrSubjectNotFound   = errors.New("subject not found")
	ErrEmailTaken        = errors.New("email already registered")
	ErrInvalidRole       = errors.New("invalid role")
	ErrValidation        = errors.New("validation failed")
)
