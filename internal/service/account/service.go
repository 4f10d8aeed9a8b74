package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/domain"
	sessionrepo "storefront/internal/repository/session"
	userrepo "storefront/internal/repository/user"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates the provided token could not be validated.
	ErrInvalidToken = errors.New("invalid token")
)

// Service handles signup/login and resolves bearer tokens to users.
type Service struct {
	users       userrepo.Repository
	tokens      *tokenManager
	sessionTTL  time.Duration
	passwordMin int
}

// New creates a Service with sane defaults.
func New(users userrepo.Repository, sessions sessionrepo.Repository) *Service {
	return &Service{
		users:       users,
		tokens:      newTokenManager(sessions),
		sessionTTL:  48 * time.Hour,
		passwordMin: 8,
	}
}

// Signup registers a new user with a password credential.
func (s *Service) Signup(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.Validation("email", "a valid email is required")
	}
	password = strings.TrimSpace(password)
	if len(password) < s.passwordMin {
		return nil, domain.Validation("password", fmt.Sprintf("must be at least %d characters", s.passwordMin))
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return s.users.Create(ctx, domain.User{Email: email, PasswordHash: string(hashed)})
}

// Login validates credentials and issues a session token.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	u, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if u.PasswordHash == "" {
		// Identity managed externally; no password login.
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(strings.TrimSpace(password))); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(ctx, u.Email, s.sessionTTL)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// LookupByToken resolves a session token to the user it identifies. The user
// row is created lazily on the first authenticated interaction, keyed by the
// session's email. Only a missing or expired session means the token is
// invalid; store failures propagate so callers do not ask the client to
// re-authenticate during an outage.
func (s *Service) LookupByToken(ctx context.Context, token string) (*domain.User, error) {
	email, err := s.tokens.Validate(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return s.users.FindOrCreateByEmail(ctx, email)
}

// SessionTTLSeconds exposes the session lifetime in seconds.
func (s *Service) SessionTTLSeconds() int {
	return int(s.sessionTTL.Seconds())
}
