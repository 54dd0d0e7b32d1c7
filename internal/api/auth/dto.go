package auth

import "time"

type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	ExpiresAt time.Time `json:"expires_at"`
}
