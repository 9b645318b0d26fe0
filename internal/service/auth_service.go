package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atlas87/atlas-backend/internal/discord"
	"github.com/atlas87/atlas-backend/internal/domain"
	"github.com/atlas87/atlas-backend/internal/dto"
	"github.com/atlas87/atlas-backend/internal/repository"
	"github.com/atlas87/atlas-backend/internal/utils"
)

// authService implements AuthService interface
type authService struct {
	userRepo       repository.UserRepository
	oauth          OAuthExchanger
	guild          MembershipChecker
	notifier       AuditNotifier
	jwtManager     *utils.JWTManager
	membershipGate bool
}

// NewAuthService creates a new auth service. When membershipGate is false
// the guild checker is never consulted.
func NewAuthService(
	userRepo repository.UserRepository,
	oauth OAuthExchanger,
	guild MembershipChecker,
	notifier AuditNotifier,
	jwtManager *utils.JWTManager,
	membershipGate bool,
) AuthService {
	return &authService{
		userRepo:       userRepo,
		oauth:          oauth,
		guild:          guild,
		notifier:       notifier,
		jwtManager:     jwtManager,
		membershipGate: membershipGate,
	}
}

// AuthorizeURL returns the Discord authorization page URL
func (s *authService) AuthorizeURL() string {
	return s.oauth.AuthURL()
}

// LoginWithDiscord runs the callback pipeline: exchange the code, fetch the
// identity, check guild membership when gated, upsert the user and mint a
// session token. Each rejection emits an audit event before returning.
func (s *authService) LoginWithDiscord(ctx context.Context, code string) (*dto.AuthResponse, error) {
	if code == "" {
		s.notifier.Notify(ctx, "Login Failure", "Authorization code is missing.", discord.ColorFailure)
		return nil, ErrMissingCode
	}

	tokens, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		s.notifier.Notify(ctx, "Authentication Error",
			fmt.Sprintf("Failed to authenticate with Discord. Details: %v", err), discord.ColorFailure)
		return nil, fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}

	identity, err := s.oauth.FetchIdentity(ctx, tokens.AccessToken)
	if err != nil {
		s.notifier.Notify(ctx, "Authentication Error",
			fmt.Sprintf("Failed to authenticate with Discord. Details: %v", err), discord.ColorFailure)
		return nil, fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}

	if s.membershipGate {
		if err := s.guild.CheckMember(ctx, identity.ID); err != nil {
			if errors.Is(err, discord.ErrNotGuildMember) {
				s.notifier.Notify(ctx, "Login Failure",
					fmt.Sprintf("User %q (id %s) is not in the guild.", identity.Username, identity.ID),
					discord.ColorFailure)
				return nil, err
			}
			s.notifier.Notify(ctx, "Authentication Error",
				fmt.Sprintf("Failed to verify guild membership. Details: %v", err), discord.ColorFailure)
			return nil, fmt.Errorf("%w: %v", ErrAuthFailed, err)
		}
	}

	user := &domain.User{
		DiscordID:    identity.ID,
		Username:     identity.Username,
		GlobalName:   identity.GlobalName,
		Avatar:       identity.Avatar,
		Email:        identity.Email,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}

	created, err := s.userRepo.Upsert(ctx, user)
	if err != nil {
		s.notifier.Notify(ctx, "Authentication Error",
			fmt.Sprintf("Failed to persist user %q (id %s). Details: %v", identity.Username, identity.ID, err),
			discord.ColorFailure)
		return nil, fmt.Errorf("failed to persist user: %w", err)
	}

	if created {
		s.notifier.Notify(ctx, "New User Registered",
			fmt.Sprintf("User %q aka %q (id %s) registered successfully.",
				identity.Username, displayName(identity), identity.ID),
			discord.ColorSuccess)
	} else {
		s.notifier.Notify(ctx, "Successful Login",
			fmt.Sprintf("User %q aka %q (id %s) logged in successfully. Their token expires in %s.",
				identity.Username, displayName(identity), identity.ID, s.expiryText()),
			discord.ColorSuccess)
	}

	token, err := s.jwtManager.GenerateSessionToken(user.ID)
	if err != nil {
		s.notifier.Notify(ctx, "Authentication Error",
			fmt.Sprintf("Failed to issue session token for user id %s. Details: %v", user.ID, err),
			discord.ColorFailure)
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	return &dto.AuthResponse{
		Message: "Authentication successful",
		Token:   token,
	}, nil
}

// GetUser gets the full user record
func (s *authService) GetUser(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &dto.UserResponse{
		ID:           user.ID,
		DiscordID:    user.DiscordID,
		Username:     user.Username,
		GlobalName:   user.GlobalName,
		Avatar:       user.Avatar,
		Email:        user.Email,
		AccessToken:  user.AccessToken,
		RefreshToken: user.RefreshToken,
		CreatedAt:    user.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    user.UpdatedAt.Format(time.RFC3339),
	}, nil
}

// ValidateToken validates a session token
func (s *authService) ValidateToken(token string) (*domain.SessionClaims, error) {
	return s.jwtManager.ValidateSessionToken(token)
}

func (s *authService) expiryText() string {
	ttl := time.Duration(s.jwtManager.GetSessionTokenExpiry()) * time.Second
	if days := int(ttl.Hours() / 24); days > 0 && ttl == time.Duration(days)*24*time.Hour {
		if days == 1 {
			return "1 day"
		}
		return fmt.Sprintf("%d days", days)
	}
	return ttl.String()
}

func displayName(identity *discord.Identity) string {
	if identity.GlobalName != nil && *identity.GlobalName != "" {
		return *identity.GlobalName
	}
	return identity.Username
}
