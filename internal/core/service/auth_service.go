package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/colegio/school-system/internal/core/domain"
	"github.com/colegio/school-system/internal/core/ports"
	"github.com/colegio/school-system/internal/token"
)

// LoginThrottle tracks failed login attempts per email (Redis-backed).
type LoginThrottle interface {
	// IsLocked reports whether the email has exhausted its attempt budget.
	IsLocked(ctx context.Context, email string) (bool, error)
	// RecordFailure counts one failed attempt against the email.
	RecordFailure(ctx context.Context, email string) error
	// Clear resets the counter after a successful login.
	Clear(ctx context.Context, email string) error
}

// AuthService implements login against the user store.
type AuthService struct {
	repo     ports.UserRepository
	codec    *token.Codec
	throttle LoginThrottle
	log      zerolog.Logger
}

// NewAuthService builds an AuthService. throttle may be nil, in which case
// no attempt limiting is applied.
func NewAuthService(repo ports.UserRepository, codec *token.Codec, throttle LoginThrottle, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, codec: codec, throttle: throttle, log: log}
}

// Login verifies the credentials and returns a signed bearer token. Unknown
// email and wrong password are indistinguishable to the caller. Throttle
// errors fail open: a Redis outage must not take logins down.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		locked, err := s.throttle.IsLocked(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Msg("login throttle unavailable")
		} else if locked {
			return "", nil, domain.ErrLoginLocked
		}
	}

	user, err := s.repo.FindByEmailWithPassword(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, email)
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, email)
		return "", nil, domain.ErrInvalidCredentials
	}

	tok, err := s.codec.Issue(user.ID, user.Email)
	if err != nil {
		return "", nil, err
	}

	if s.throttle != nil {
		if err := s.throttle.Clear(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("login throttle clear failed")
		}
	}

	user.PasswordHash = ""
	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("login")
	return tok, user, nil
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("login throttle record failed")
	}
}
