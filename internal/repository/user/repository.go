package user

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, u domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// FindOrCreateByEmail returns the user for an email, creating the row
	// atomically if absent. Safe under concurrent calls for the same email.
	FindOrCreateByEmail(ctx context.Context, email string) (*domain.User, error)
}
