package session

import (
	"context"
	"time"
)

// Session is an opaque bearer token bound to an authenticated email. The
// email is the stable identity key; the user row itself is created lazily.
type Session struct {
	Token     string
	Email     string
	ExpiresAt time.Time
}

type Repository interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}
