package workspaces_models

import (
	"time"

	"github.com/google/uuid"
)

type Workspace struct {
	ID        uuid.UUID `json:"id"        gorm:"column:id"`
	Slug      string    `json:"slug"      gorm:"column:slug;uniqueIndex"`
	Name      string    `json:"name"      gorm:"column:name"`
	Avatar    *string   `json:"avatar"    gorm:"column:avatar"`
	IsActive  bool      `json:"isActive"  gorm:"column:is_active"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
}

func (Workspace) TableName() string {
	return "workspaces"
}
