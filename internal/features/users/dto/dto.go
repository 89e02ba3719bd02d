package users_dto

import (
	"time"

	users_interfaces "taskplane-backend/internal/features/users/interfaces"

	"github.com/google/uuid"
)

type RegisterRequestDTO struct {
	Email    string  `json:"email"    binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8"`
	Name     string  `json:"name"     binding:"required,min=2,max=50"`
	Avatar   *string `json:"avatar"   binding:"omitempty,url"`
}

type LoginRequestDTO struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserDTO is the minimal user record attached to requests and returned from
// auth endpoints. The password hash never appears here.
type UserDTO struct {
	ID     uuid.UUID `json:"id"`
	Email  string    `json:"email"`
	Name   string    `json:"name"`
	Avatar *string   `json:"avatar,omitempty"`
}

type AuthTokensResponseDTO struct {
	AccessToken  string  `json:"accessToken"`
	RefreshToken string  `json:"refreshToken"`
	User         UserDTO `json:"user"`
}

type RefreshRequestDTO struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type RefreshResponseDTO struct {
	AccessToken string `json:"accessToken"`
}

type LogoutRequestDTO struct {
	RefreshToken string `json:"refreshToken"`
}

// SessionResponseDTO describes the caller's session on an endpoint that
// accepts both anonymous and authenticated requests.
type SessionResponseDTO struct {
	Authenticated bool     `json:"authenticated"`
	User          *UserDTO `json:"user,omitempty"`
}

type UpdateProfileRequestDTO struct {
	Name   *string `json:"name"   binding:"omitempty,min=2,max=50"`
	Avatar *string `json:"avatar" binding:"omitempty,url"`
}

type ChangePasswordRequestDTO struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword"     binding:"required,min=8"`
}

type ProfileResponseDTO struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Avatar    *string    `json:"avatar,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

// OAuthProfile is the normalized identity returned by an OAuth provider.
type OAuthProfile struct {
	ID       string
	Email    string
	Name     string
	Avatar   *string
	Provider users_interfaces.OAuthProvider
}

type OAuthCallbackRequestDTO struct {
	Code        string `json:"code"        binding:"required"`
	RedirectUri string `json:"redirectUri" binding:"required"`
}
