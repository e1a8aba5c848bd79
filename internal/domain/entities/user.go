package entities

import (
	"time"

	"github.com/google/uuid"
)

// User represents a dashboard user. Login requires a prior verification.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// VerifyEmailInput is the body of POST /auth/google/verify
type VerifyEmailInput struct {
	Email  string `json:"email" binding:"required,email"`
	Secret string `json:"secret" binding:"required"`
}

// LoginInput is the body of POST /auth/google
type LoginInput struct {
	Email string `json:"email" binding:"required,email"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User               *User     `json:"user"`
	AccessToken        string    `json:"accessToken"`
	AccessTokenExpires time.Time `json:"accessTokenExpires"`
}
