package domain

import "time"

// SessionClaims represents the claims carried by a session token
type SessionClaims struct {
	UserID string `json:"sub"`
	Exp    int64  `json:"exp"`
	Iat    int64  `json:"iat"`
}

// IsExpired checks if the token is expired
func (sc SessionClaims) IsExpired() bool {
	return time.Now().Unix() > sc.Exp
}
