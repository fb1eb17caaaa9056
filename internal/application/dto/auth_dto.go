package dto

import "time"

// RegisterRequest body para POST /api/auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AccountResponse cuenta en respuestas (sin hash de password).
type AccountResponse struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Plan          string    `json:"plan"`
	Role          string    `json:"role"`
	IsFiscalReady bool      `json:"is_fiscal_ready"`
	CreatedAt     time.Time `json:"created_at"`
}

// LoginResponse token + cuenta.
type LoginResponse struct {
	Token   string          `json:"token"`
	Account AccountResponse `json:"account"`
}
