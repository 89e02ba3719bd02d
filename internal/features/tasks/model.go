package tasks

import (
	"time"

	"github.com/google/uuid"
)

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
	TaskPriorityUrgent TaskPriority = "URGENT"
)

func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	default:
		return false
	}
}

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusInReview   TaskStatus = "IN_REVIEW"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
)

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusInReview, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

type Task struct {
	ID          uuid.UUID    `json:"id"          gorm:"column:id"`
	WorkspaceID uuid.UUID    `json:"workspaceId" gorm:"column:workspace_id"`
	ProjectID   uuid.UUID    `json:"projectId"   gorm:"column:project_id"`
	CreatorID   uuid.UUID    `json:"creatorId"   gorm:"column:creator_id"`
	AssigneeID  *uuid.UUID   `json:"assigneeId"  gorm:"column:assignee_id"`
	Title       string       `json:"title"       gorm:"column:title"`
	Description string       `json:"description" gorm:"column:description"`
	Priority    TaskPriority `json:"priority"    gorm:"column:priority"`
	Status      TaskStatus   `json:"status"      gorm:"column:status"`
	Position    int          `json:"position"    gorm:"column:position"`
	Labels      []string     `json:"labels"      gorm:"column:labels;serializer:json"`
	DueDate     *time.Time   `json:"dueDate"     gorm:"column:due_date"`
	CompletedAt *time.Time   `json:"completedAt" gorm:"column:completed_at"`
	CreatedAt   time.Time    `json:"createdAt"   gorm:"column:created_at"`
	UpdatedAt   time.Time    `json:"updatedAt"   gorm:"column:updated_at"`
}

func (Task) TableName() string {
	return "tasks"
}

func (t *Task) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.Status != TaskStatusCompleted && t.DueDate.Before(now)
}
