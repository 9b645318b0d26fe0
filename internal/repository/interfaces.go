package repository

import (
	"context"

	"github.com/atlas87/atlas-backend/internal/domain"
)

// UserRepository defines methods for user operations
type UserRepository interface {
	// Upsert atomically creates or refreshes the record keyed by
	// user.DiscordID and reports whether a new record was created.
	Upsert(ctx context.Context, user *domain.User) (created bool, err error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByDiscordID(ctx context.Context, discordID string) (*domain.User, error)
}
