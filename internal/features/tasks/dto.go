package tasks

import (
	"time"

	"github.com/google/uuid"
)

type CreateTaskRequestDTO struct {
	ProjectID   uuid.UUID    `json:"projectId"   binding:"required"`
	Title       string       `json:"title"       binding:"required,min=1,max=200"`
	Description string       `json:"description" binding:"max=5000"`
	Priority    TaskPriority `json:"priority"`
	AssigneeID  *uuid.UUID   `json:"assigneeId"`
	Labels      []string     `json:"labels"`
	DueDate     *time.Time   `json:"dueDate"`
}

type UpdateTaskRequestDTO struct {
	Title       *string       `json:"title"       binding:"omitempty,min=1,max=200"`
	Description *string       `json:"description" binding:"omitempty,max=5000"`
	Priority    *TaskPriority `json:"priority"`
	Status      *TaskStatus   `json:"status"`
	Position    *int          `json:"position"`
	Labels      []string      `json:"labels"`
	DueDate     *time.Time    `json:"dueDate"`
}

type AssignTaskRequestDTO struct {
	AssigneeID *uuid.UUID `json:"assigneeId"`
}

type ListTasksResponseDTO struct {
	Tasks []*Task `json:"tasks"`
}
