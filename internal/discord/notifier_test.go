package discord

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestNotifySendsEmbed(t *testing.T) {
	var got channelMessage

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/channels/133978286952612260/messages" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bot test-bot-token" {
			t.Errorf("Expected bot auth, got '%s'", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("Failed to decode message: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	notifier := NewNotifier(testDiscordConfig(srv.URL), zap.NewNop())
	notifier.Notify(context.Background(), "Successful Login", "User logged in.", ColorSuccess)

	if len(got.Embeds) != 1 {
		t.Fatalf("Expected one embed, got %d", len(got.Embeds))
	}
	if got.Embeds[0].Title != "Successful Login" {
		t.Errorf("Expected title 'Successful Login', got '%s'", got.Embeds[0].Title)
	}
	if got.Embeds[0].Color != ColorSuccess {
		t.Errorf("Expected success color, got %#x", got.Embeds[0].Color)
	}
	if got.Embeds[0].Timestamp == "" {
		t.Error("Expected a timestamp on the embed")
	}
}

func TestNotifySwallowsFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	notifier := NewNotifier(testDiscordConfig(srv.URL), zap.NewNop())

	// Must not panic or surface an error in any form
	notifier.Notify(context.Background(), "Login Failure", "Authorization code is missing.", ColorFailure)
}

func TestNotifySwallowsUnreachableChannel(t *testing.T) {
	cfg := testDiscordConfig("http://127.0.0.1:1")

	notifier := NewNotifier(cfg, zap.NewNop())
	notifier.Notify(context.Background(), "Authentication Error", "Something broke.", ColorFailure)
}
