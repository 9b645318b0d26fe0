package discord

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCheckMemberOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/guilds/987654321098765432/members/111111111111111111" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bot test-bot-token" {
			t.Errorf("Expected bot auth, got '%s'", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"user":{"id":"111111111111111111"}}`))
	}))
	defer srv.Close()

	checker := NewGuildChecker(testDiscordConfig(srv.URL))

	if err := checker.CheckMember(context.Background(), "111111111111111111"); err != nil {
		t.Errorf("Expected member, got %v", err)
	}
}

func TestCheckMemberNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Unknown Member","code":10007}`))
	}))
	defer srv.Close()

	checker := NewGuildChecker(testDiscordConfig(srv.URL))

	err := checker.CheckMember(context.Background(), "222222222222222222")
	if !errors.Is(err, ErrNotGuildMember) {
		t.Errorf("Expected ErrNotGuildMember, got %v", err)
	}
}

func TestCheckMemberUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	checker := NewGuildChecker(testDiscordConfig(srv.URL))

	err := checker.CheckMember(context.Background(), "111111111111111111")
	if err == nil || errors.Is(err, ErrNotGuildMember) {
		t.Errorf("Expected upstream error, got %v", err)
	}
	if !errors.Is(err, ErrUpstream) {
		t.Errorf("Expected ErrUpstream, got %v", err)
	}
}
