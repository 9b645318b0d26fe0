package dto

// DiscordCallbackRequest carries the authorization code returned by Discord.
// Code is validated by the flow itself so an empty body still gets audited.
type DiscordCallbackRequest struct {
	Code string `json:"code"`
}

// AuthResponse represents a successful authentication response
type AuthResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// UserResponse represents the authenticated user's full record
type UserResponse struct {
	ID           string  `json:"id"`
	DiscordID    string  `json:"discord_id"`
	Username     string  `json:"username"`
	GlobalName   *string `json:"global_name"`
	Avatar       *string `json:"avatar"`
	Email        *string `json:"email"`
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Message string `json:"message"`
}
