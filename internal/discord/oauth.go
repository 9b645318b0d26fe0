package discord

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/atlas87/atlas-backend/internal/config"
	"golang.org/x/oauth2"
)

// Identity is the profile Discord returns for the authenticating user.
// It is rebuilt on every login and never stored as-is.
type Identity struct {
	ID         string  `json:"id"`
	Username   string  `json:"username"`
	GlobalName *string `json:"global_name"`
	Avatar     *string `json:"avatar"`
	Email      *string `json:"email"`
}

// TokenPair holds the OAuth tokens Discord issues for the user. Both are
// opaque to this service and are cached on the user record.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// OAuthClient exchanges authorization codes and fetches user identities
// against the Discord OAuth2 API.
type OAuthClient struct {
	conf       *oauth2.Config
	apiBase    string
	httpClient *http.Client
}

// NewOAuthClient creates a new Discord OAuth client
func NewOAuthClient(cfg config.DiscordConfig) *OAuthClient {
	return &OAuthClient{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       []string{"identify", "email"},
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.APIBaseURL + "/oauth2/authorize",
				TokenURL:  cfg.APIBaseURL + "/oauth2/token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		apiBase:    cfg.APIBaseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout.Duration},
	}
}

// AuthURL returns the Discord authorization page URL the browser is sent to
func (c *OAuthClient) AuthURL() string {
	return c.conf.AuthCodeURL("")
}

// Exchange trades an authorization code for Discord's token pair.
// Codes are single-use and short-lived, so failures are not retried.
func (c *OAuthClient) Exchange(ctx context.Context, code string) (TokenPair, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)

	token, err := c.conf.Exchange(ctx, code)
	if err != nil {
		return TokenPair{}, fmt.Errorf("code exchange rejected: %w", ErrUpstream)
	}

	return TokenPair{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}, nil
}

// FetchIdentity retrieves the authenticated user's profile from /users/@me
func (c *OAuthClient) FetchIdentity(ctx context.Context, accessToken string) (*Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBase+"/users/@me", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build identity request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity fetch failed: %w", ErrUpstream)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("identity fetch returned status %d: %w", resp.StatusCode, ErrUpstream)
	}

	var identity Identity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return nil, fmt.Errorf("malformed identity response: %w", ErrUpstream)
	}

	if identity.ID == "" {
		return nil, fmt.Errorf("identity response missing user id: %w", ErrUpstream)
	}

	return &identity, nil
}
