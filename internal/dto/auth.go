// File: internal/dto/auth.go
package dto

import "time"

// swagger:model dto.RegisterRequest
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=80" example:"alice"`
	Email    string `json:"email" validate:"required,email,max=120" example:"alice@example.com"`
	Password string `json:"password" validate:"required,max=72" example:"Secret123!"`
	// 僅在 ALLOW_ADMIN_REGISTRATION 開啟時有效
	IsAdmin bool `json:"is_admin" example:"false"`
}

// swagger:model dto.LoginRequest
type LoginRequest struct {
	Email    string `json:"email" validate:"required" example:"alice@example.com"`
	Password string `json:"password" validate:"required" example:"Secret123!"`
}

// swagger:model dto.LoginResponse
type LoginResponse struct {
	Token     string    `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	IsAdmin   bool      `json:"is_admin" example:"false"`
	ExpiresAt time.Time `json:"expires_at" example:"2025-05-02T15:04:05Z"`
}

// swagger:model dto.UserResponse
type UserResponse struct {
	ID        int       `json:"id" example:"1"`
	Username  string    `json:"username" example:"alice"`
	Email     string    `json:"email" example:"alice@example.com"`
	IsAdmin   bool      `json:"is_admin" example:"false"`
	CreatedAt time.Time `json:"created_at" example:"2025-05-01T15:04:05Z"`
}
