package service

import (
	"context"

	"github.com/atlas87/atlas-backend/internal/discord"
	"github.com/atlas87/atlas-backend/internal/domain"
	"github.com/atlas87/atlas-backend/internal/dto"
)

// AuthService defines methods for authentication operations
type AuthService interface {
	// AuthorizeURL returns the Discord authorization page URL
	AuthorizeURL() string
	// LoginWithDiscord runs the full callback flow for an authorization code
	LoginWithDiscord(ctx context.Context, code string) (*dto.AuthResponse, error)
	// GetUser returns the full record for an authenticated user
	GetUser(ctx context.Context, userID string) (*dto.UserResponse, error)
	// ValidateToken verifies a session token and returns its claims
	ValidateToken(token string) (*domain.SessionClaims, error)
}

// OAuthExchanger is the slice of the Discord OAuth client the flow needs
type OAuthExchanger interface {
	AuthURL() string
	Exchange(ctx context.Context, code string) (discord.TokenPair, error)
	FetchIdentity(ctx context.Context, accessToken string) (*discord.Identity, error)
}

// MembershipChecker verifies guild membership for a Discord user id
type MembershipChecker interface {
	CheckMember(ctx context.Context, discordID string) error
}

// AuditNotifier delivers best-effort audit events; it never reports failure
type AuditNotifier interface {
	Notify(ctx context.Context, title, description string, color int)
}
