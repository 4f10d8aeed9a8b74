package account

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"storefront/internal/domain"
	sessionrepo "storefront/internal/repository/session"
)

type tokenManager struct {
	repo sessionrepo.Repository
}

func newTokenManager(repo sessionrepo.Repository) *tokenManager {
	return &tokenManager{repo: repo}
}

func (m *tokenManager) Issue(ctx context.Context, email string, ttl time.Duration) (string, error) {
	expiresAt := time.Now().Add(ttl)
	for i := 0; i < 5; i++ {
		token, err := randomToken()
		if err != nil {
			return "", err
		}
		err = m.repo.Create(ctx, sessionrepo.Session{
			Token:     token,
			Email:     email,
			ExpiresAt: expiresAt,
		})
		if err == nil {
			return token, nil
		}
		if errors.Is(err, domain.ErrAlreadyExists) {
			continue
		}
		return "", err
	}
	return "", errors.New("token collision")
}

// Validate returns the session's email. Unknown tokens and expired sessions
// come back as domain.ErrNotFound; expired sessions are deleted lazily. Any
// other store error is returned as is.
func (m *tokenManager) Validate(ctx context.Context, token string) (string, error) {
	s, err := m.repo.Get(ctx, token)
	if err != nil {
		return "", err
	}
	if time.Now().After(s.ExpiresAt) {
		_ = m.repo.Delete(ctx, token)
		return "", domain.ErrNotFound
	}
	return s.Email, nil
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
