package projects

import (
	"time"

	"github.com/google/uuid"
)

type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "ACTIVE"
	ProjectStatusArchived  ProjectStatus = "ARCHIVED"
	ProjectStatusCompleted ProjectStatus = "COMPLETED"
)

func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusActive, ProjectStatusArchived, ProjectStatusCompleted:
		return true
	default:
		return false
	}
}

type Project struct {
	ID          uuid.UUID     `json:"id"          gorm:"column:id"`
	WorkspaceID uuid.UUID     `json:"workspaceId" gorm:"column:workspace_id"`
	OwnerID     uuid.UUID     `json:"ownerId"     gorm:"column:owner_id"`
	Name        string        `json:"name"        gorm:"column:name"`
	Description string        `json:"description" gorm:"column:description"`
	Color       string        `json:"color"       gorm:"column:color"`
	Status      ProjectStatus `json:"status"      gorm:"column:status"`
	CreatedAt   time.Time     `json:"createdAt"   gorm:"column:created_at"`
	UpdatedAt   time.Time     `json:"updatedAt"   gorm:"column:updated_at"`
}

func (Project) TableName() string {
	return "projects"
}
