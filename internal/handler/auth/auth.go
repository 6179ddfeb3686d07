// File: internal/handler/auth/auth.go
package auth

import (
	"canteen/internal/dto"
	"canteen/internal/model"
	"canteen/internal/service"
)

var (
	register         = service.Register
	authenticate     = service.Authenticate
	issueAccessToken = service.IssueAccessToken
)

func userResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}
