package domain

import "time"

// User is the durable local account, keyed by the Discord identity that
// created it. Profile fields and cached Discord tokens are overwritten on
// every successful login.
type User struct {
	ID           string    `json:"id" db:"id"`
	DiscordID    string    `json:"discord_id" db:"discord_id"`
	Username     string    `json:"username" db:"username"`
	GlobalName   *string   `json:"global_name" db:"global_name"`
	Avatar       *string   `json:"avatar" db:"avatar"`
	Email        *string   `json:"email" db:"email"`
	AccessToken  string    `json:"access_token" db:"access_token"`
	RefreshToken string    `json:"refresh_token" db:"refresh_token"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
