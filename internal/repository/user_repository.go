package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/atlas87/atlas-backend/internal/domain"
	"github.com/atlas87/atlas-backend/pkg/database"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// userRepository implements UserRepository interface
type userRepository struct {
	db *database.Postgres
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.Postgres) UserRepository {
	return &userRepository{db: db}
}

// Upsert creates the user on first login and refreshes profile fields and
// cached Discord tokens on every later one. The unique index on discord_id
// serializes concurrent logins for the same Discord account, so exactly one
// row ever exists per identity.
func (r *userRepository) Upsert(ctx context.Context, user *domain.User) (bool, error) {
	query := `
		INSERT INTO users (id, discord_id, username, global_name, avatar, email, access_token, refresh_token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (discord_id) DO UPDATE SET
			username = EXCLUDED.username,
			global_name = EXCLUDED.global_name,
			avatar = EXCLUDED.avatar,
			email = EXCLUDED.email,
			access_token = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at, updated_at, (xmax = 0) AS inserted
	`

	// Generate UUID if not provided
	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	now := time.Now()

	var created bool
	err := r.db.DB.QueryRowContext(ctx, query,
		user.ID,
		user.DiscordID,
		user.Username,
		user.GlobalName,
		user.Avatar,
		user.Email,
		user.AccessToken,
		user.RefreshToken,
		now,
		now,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt, &created)

	if err != nil {
		return false, fmt.Errorf("failed to upsert user with discord id %s: %w", user.DiscordID, wrapStoreError(err))
	}

	return created, nil
}

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getBy(ctx, "id", id)
}

// GetByDiscordID retrieves a user by Discord ID
func (r *userRepository) GetByDiscordID(ctx context.Context, discordID string) (*domain.User, error) {
	return r.getBy(ctx, "discord_id", discordID)
}

func (r *userRepository) getBy(ctx context.Context, column, value string) (*domain.User, error) {
	query := fmt.Sprintf(`
		SELECT id, discord_id, username, global_name, avatar, email, access_token, refresh_token, created_at, updated_at
		FROM users
		WHERE %s = $1
	`, column)

	user := &domain.User{}
	var globalName, avatar, email sql.NullString

	err := r.db.DB.QueryRowContext(ctx, query, value).Scan(
		&user.ID,
		&user.DiscordID,
		&user.Username,
		&globalName,
		&avatar,
		&email,
		&user.AccessToken,
		&user.RefreshToken,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with %s %s not found: %w", column, value, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by %s: %w", column, wrapStoreError(err))
	}

	if globalName.Valid {
		user.GlobalName = &globalName.String
	}
	if avatar.Valid {
		user.Avatar = &avatar.String
	}
	if email.Valid {
		user.Email = &email.String
	}

	return user, nil
}

// wrapStoreError tags driver and connection failures as ErrUnavailable so
// callers can treat the store as a single failure kind.
func wrapStoreError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("postgres error %s: %w", pqErr.Code, ErrUnavailable)
	}
	return fmt.Errorf("%v: %w", err, ErrUnavailable)
}
