package users_models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID  `json:"id"        gorm:"column:id"`
	Email          string     `json:"email"     gorm:"column:email"`
	HashedPassword string     `json:"-"         gorm:"column:hashed_password"`
	Name           string     `json:"name"      gorm:"column:name"`
	Avatar         *string    `json:"avatar"    gorm:"column:avatar"`
	IsActive       bool       `json:"isActive"  gorm:"column:is_active"`
	GoogleID       *string    `json:"-"         gorm:"column:google_id"`
	GitHubID       *string    `json:"-"         gorm:"column:github_id"`
	CreatedAt      time.Time  `json:"createdAt" gorm:"column:created_at"`
	LastLogin      *time.Time `json:"lastLogin" gorm:"column:last_login"`
}

func (User) TableName() string {
	return "users"
}
