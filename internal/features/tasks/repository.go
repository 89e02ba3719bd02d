package tasks

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskStore persists tasks. Lookups return (nil, nil) when no matching row
// exists.
type TaskStore interface {
	CreateTask(task *Task) error
	GetTaskByID(id uuid.UUID) (*Task, error)
	GetProjectTasks(projectID uuid.UUID) ([]*Task, error)
	GetWorkspaceTasks(workspaceID uuid.UUID) ([]*Task, error)
	UpdateTask(task *Task) error
	DeleteTask(id uuid.UUID) error
	CountByWorkspace(workspaceID uuid.UUID) (int64, error)
	CountByWorkspaceAndStatus(workspaceID uuid.UUID, status TaskStatus) (int64, error)
	CountOverdue(workspaceID uuid.UUID, now time.Time) (int64, error)
}

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) CreateTask(task *Task) error {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}

	now := time.Now().UTC()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	task.UpdatedAt = now

	return r.db.Create(task).Error
}

func (r *TaskRepository) GetTaskByID(id uuid.UUID) (*Task, error) {
	var task Task

	if err := r.db.Where("id = ?", id).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &task, nil
}

func (r *TaskRepository) GetProjectTasks(projectID uuid.UUID) ([]*Task, error) {
	var tasks []*Task

	if err := r.db.
		Where("project_id = ?", projectID).
		Order("position ASC, created_at ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}

	return tasks, nil
}

func (r *TaskRepository) GetWorkspaceTasks(workspaceID uuid.UUID) ([]*Task, error) {
	var tasks []*Task

	if err := r.db.
		Where("workspace_id = ?", workspaceID).
		Order("created_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}

	return tasks, nil
}

func (r *TaskRepository) UpdateTask(task *Task) error {
	task.UpdatedAt = time.Now().UTC()

	return r.db.Save(task).Error
}

func (r *TaskRepository) DeleteTask(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&Task{}).Error
}

func (r *TaskRepository) CountByWorkspace(workspaceID uuid.UUID) (int64, error) {
	var count int64

	err := r.db.Model(&Task{}).
		Where("workspace_id = ?", workspaceID).
		Count(&count).Error

	return count, err
}

func (r *TaskRepository) CountByWorkspaceAndStatus(
	workspaceID uuid.UUID,
	status TaskStatus,
) (int64, error) {
	var count int64

	err := r.db.Model(&Task{}).
		Where("workspace_id = ? AND status = ?", workspaceID, status).
		Count(&count).Error

	return count, err
}

func (r *TaskRepository) CountOverdue(workspaceID uuid.UUID, now time.Time) (int64, error) {
	var count int64

	err := r.db.Model(&Task{}).
		Where("workspace_id = ? AND status != ? AND due_date IS NOT NULL AND due_date < ?",
			workspaceID, TaskStatusCompleted, now).
		Count(&count).Error

	return count, err
}
