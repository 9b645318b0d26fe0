package discord

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/atlas87/atlas-backend/internal/config"
)

// GuildChecker verifies guild membership through the bot credential.
// The check runs with the service's own token, not the user's.
type GuildChecker struct {
	apiBase    string
	botToken   string
	guildID    string
	httpClient *http.Client
}

// NewGuildChecker creates a new guild membership checker
func NewGuildChecker(cfg config.DiscordConfig) *GuildChecker {
	return &GuildChecker{
		apiBase:    cfg.APIBaseURL,
		botToken:   cfg.BotToken,
		guildID:    cfg.GuildID,
		httpClient: &http.Client{Timeout: cfg.Timeout.Duration},
	}
}

// CheckMember returns nil when discordID belongs to the required guild,
// ErrNotGuildMember when Discord reports the member as not found, and a
// wrapped ErrUpstream for any other failure.
func (g *GuildChecker) CheckMember(ctx context.Context, discordID string) error {
	url := fmt.Sprintf("%s/guilds/%s/members/%s", g.apiBase, g.guildID, discordID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build member request: %w", err)
	}
	req.Header.Set("Authorization", "Bot "+g.botToken)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("member lookup failed: %w", ErrUpstream)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return ErrNotGuildMember
	default:
		return fmt.Errorf("member lookup returned status %d: %w", resp.StatusCode, ErrUpstream)
	}
}
