package acceptance

import (
	"bytes"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/atlas87/atlas-backend/internal/dto"
)

func (s *Suite) postCallback(code string) *http.Response {
	var body []byte
	if code != "" {
		body, _ = json.Marshal(dto.DiscordCallbackRequest{Code: code})
	} else {
		body = []byte(`{}`)
	}

	resp, err := http.Post(
		s.BaseURL+"/auth/discord",
		"application/json",
		bytes.NewBuffer(body),
	)
	s.Require().NoError(err)
	return resp
}

func (s *Suite) TestDiscordCallback_Success() {
	resp := s.postCallback(validCode)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var authResp dto.AuthResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&authResp))

	s.Equal("Authentication successful", authResp.Message)
	s.NotEmpty(authResp.Token)

	s.Equal(1, s.countUsers(stubDiscordID))

	tokens, members, notes := s.Discord.counters()
	s.Equal(1, tokens, "Should exchange the code once")
	s.Equal(1, members, "Should check guild membership once")
	s.Equal(1, notes, "Should emit one audit notification")
}

func (s *Suite) TestDiscordCallback_MissingCode() {
	resp := s.postCallback("")
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)

	var errResp dto.ErrorResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&errResp))
	s.Equal("Authorization code is missing", errResp.Message)

	tokens, _, _ := s.Discord.counters()
	s.Equal(0, tokens, "Should not call the token endpoint without a code")
	s.Equal(0, s.countUsers(stubDiscordID))
}

func (s *Suite) TestDiscordCallback_InvalidCode() {
	resp := s.postCallback("already-used-code")
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)

	var errResp dto.ErrorResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&errResp))
	s.Equal("Failed to authenticate with Discord", errResp.Message)

	s.Equal(0, s.countUsers(stubDiscordID))
}

func (s *Suite) TestDiscordCallback_NotGuildMember() {
	s.Discord.setMemberNotFound(true)

	resp := s.postCallback(validCode)
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)

	var errResp dto.ErrorResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&errResp))
	s.Equal("User is not a member of the required Discord guild.", errResp.Message)

	s.Equal(0, s.countUsers(stubDiscordID), "A rejected member must not be persisted")
}

func (s *Suite) TestDiscordCallback_RepeatLoginKeepsSingleRecord() {
	resp1 := s.postCallback(validCode)
	resp1.Body.Close()
	s.Equal(http.StatusOK, resp1.StatusCode)

	resp2 := s.postCallback(validCode)
	defer resp2.Body.Close()
	s.Equal(http.StatusOK, resp2.StatusCode)

	s.Equal(1, s.countUsers(stubDiscordID), "Repeat login must not duplicate the user")

	var updatedAt, createdAt string
	err := s.Postgres.DB.QueryRow(
		"SELECT created_at::text, updated_at::text FROM users WHERE discord_id = $1", stubDiscordID,
	).Scan(&createdAt, &updatedAt)
	s.Require().NoError(err)
	s.NotEmpty(createdAt)
	s.NotEmpty(updatedAt)
}

func (s *Suite) TestDiscordCallback_ConcurrentLoginsSingleRecord() {
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp := s.postCallback(validCode)
			resp.Body.Close()
		}()
	}
	wg.Wait()

	s.Equal(1, s.countUsers(stubDiscordID), "Concurrent logins must produce exactly one record")
}

func (s *Suite) TestDiscordCallback_NotifierFailureDoesNotAffectFlow() {
	s.Discord.setNotifierFails(true)

	resp := s.postCallback(validCode)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode, "Auth must succeed even when audit delivery fails")
	s.Equal(1, s.countUsers(stubDiscordID))
}

func (s *Suite) TestAuthorize_RedirectsToDiscord() {
	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	resp, err := client.Get(s.BaseURL + "/auth/discord")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusFound, resp.StatusCode)
	s.Contains(resp.Header.Get("Location"), "/oauth2/authorize")
	s.Contains(resp.Header.Get("Location"), "client_id=123456789012345678")
}

func (s *Suite) authenticate() string {
	resp := s.postCallback(validCode)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var authResp dto.AuthResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&authResp))
	return authResp.Token
}

func (s *Suite) getMe(token string) *http.Response {
	req, err := http.NewRequest(http.MethodGet, s.BaseURL+"/auth/me", nil)
	s.Require().NoError(err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	return resp
}

func (s *Suite) TestGetMe_Success() {
	token := s.authenticate()

	resp := s.getMe(token)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var user dto.UserResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&user))

	s.Equal(stubDiscordID, user.DiscordID)
	s.Equal(stubUsername, user.Username)
	s.Require().NotNil(user.GlobalName)
	s.Equal(stubGlobalName, *user.GlobalName)
	s.Require().NotNil(user.Email)
	s.Equal(stubEmail, *user.Email)
	s.Equal(stubAccessToken, user.AccessToken)
	s.NotEmpty(user.CreatedAt)
	s.NotEmpty(user.UpdatedAt)
}

func (s *Suite) TestGetMe_NoToken() {
	resp := s.getMe("")
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)

	var errResp dto.ErrorResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&errResp))
	s.Equal("Invalid token", errResp.Message)
}

func (s *Suite) TestGetMe_MalformedToken() {
	resp := s.getMe("not-a-jwt")
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestGetMe_DeletedUser() {
	token := s.authenticate()

	_, err := s.Postgres.DB.Exec("DELETE FROM users WHERE discord_id = $1", stubDiscordID)
	s.Require().NoError(err)

	resp := s.getMe(token)
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)

	var errResp dto.ErrorResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&errResp))
	s.Equal("User not exist", errResp.Message)
}
