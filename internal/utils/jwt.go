package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/atlas87/atlas-backend/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// Session token validation errors. Handlers surface both as a uniform 401;
// the distinction exists only for server-side logging.
var (
	ErrTokenExpired = errors.New("session token is expired")
	ErrTokenInvalid = errors.New("session token is invalid")
)

// JWTManager issues and verifies session tokens. Verification is stateless:
// signature plus expiry, no server-side revocation.
type JWTManager struct {
	secret             []byte
	sessionTokenExpiry time.Duration
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(secret string, sessionTokenExpiry time.Duration) *JWTManager {
	return &JWTManager{
		secret:             []byte(secret),
		sessionTokenExpiry: sessionTokenExpiry,
	}
}

// GenerateSessionToken generates a signed session token for the given user
func (j *JWTManager) GenerateSessionToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": now.Add(j.sessionTokenExpiry).Unix(),
		"iat": now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, nil
}

// ValidateSessionToken validates a session token and returns its claims.
// Returns ErrTokenExpired for a well-signed but expired token and
// ErrTokenInvalid for everything else.
func (j *JWTManager) ValidateSessionToken(tokenString string) (*domain.SessionClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected claims type", ErrTokenInvalid)
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrTokenInvalid)
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, fmt.Errorf("%w: missing expiry", ErrTokenInvalid)
	}

	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, fmt.Errorf("%w: missing issued-at", ErrTokenInvalid)
	}

	return &domain.SessionClaims{
		UserID: sub,
		Exp:    int64(exp),
		Iat:    int64(iat),
	}, nil
}

// GetSessionTokenExpiry returns the session token expiry duration in seconds
func (j *JWTManager) GetSessionTokenExpiry() int {
	return int(j.sessionTokenExpiry.Seconds())
}
