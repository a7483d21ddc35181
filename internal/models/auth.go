package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AdminCredential is the single shared credential pair for the school
// administrator. There is no per-user account table.
type AdminCredential struct {
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// LoginRequest carries the shared credential login payload.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SetupRequest carries the first-run credential payload.
type SetupRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=4"`
}

// LoginResponse returns the issued access token.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// JWTClaims is the token payload for the admin session.
type JWTClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}
