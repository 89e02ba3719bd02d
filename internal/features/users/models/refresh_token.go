package users_models

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken is a server-persisted credential; deleting the row revokes it.
// One user may hold several concurrent rows (one per device/session).
type RefreshToken struct {
	ID        uuid.UUID `json:"id"        gorm:"column:id"`
	Token     string    `json:"token"     gorm:"column:token"`
	UserID    uuid.UUID `json:"userId"    gorm:"column:user_id"`
	ExpiresAt time.Time `json:"expiresAt" gorm:"column:expires_at"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (t *RefreshToken) IsExpired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}
