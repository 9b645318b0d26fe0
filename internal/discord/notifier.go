package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/atlas87/atlas-backend/internal/config"
	"go.uber.org/zap"
)

// Embed colors for audit events
const (
	ColorInfo    = 0x0099ff
	ColorFailure = 0xff0000
	ColorSuccess = 0x00ff00
)

// Notifier posts audit embeds to a fixed Discord channel using the bot
// credential. Delivery is best-effort: failures are logged and swallowed so
// they can never affect the authentication flow.
type Notifier struct {
	apiBase    string
	botToken   string
	channelID  string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewNotifier creates a new audit notifier
func NewNotifier(cfg config.DiscordConfig, logger *zap.Logger) *Notifier {
	return &Notifier{
		apiBase:    cfg.APIBaseURL,
		botToken:   cfg.BotToken,
		channelID:  cfg.LogChannelID,
		httpClient: &http.Client{Timeout: cfg.Timeout.Duration},
		logger:     logger,
	}
}

type embed struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       int    `json:"color"`
	Timestamp   string `json:"timestamp"`
}

type channelMessage struct {
	Embeds []embed `json:"embeds"`
}

// Notify sends one audit embed to the log channel. The result is
// intentionally discarded; a failed notification only produces a log line.
func (n *Notifier) Notify(ctx context.Context, title, description string, color int) {
	if err := n.send(ctx, title, description, color); err != nil {
		n.logger.Warn("audit notification failed",
			zap.String("title", title),
			zap.Error(err),
		)
	}
}

func (n *Notifier) send(ctx context.Context, title, description string, color int) error {
	msg := channelMessage{
		Embeds: []embed{{
			Title:       title,
			Description: description,
			Color:       color,
			Timestamp:   time.Now().UTC().Format(time.RFC3339),
		}},
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	url := fmt.Sprintf("%s/channels/%s/messages", n.apiBase, n.channelID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build message request: %w", err)
	}
	req.Header.Set("Authorization", "Bot "+n.botToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("message send failed: %w", ErrUpstream)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("message send returned status %d: %w", resp.StatusCode, ErrUpstream)
	}

	return nil
}
