package tasks

import (
	"errors"
	"fmt"
	"time"

	"taskplane-backend/internal/features/projects"
	users_interfaces "taskplane-backend/internal/features/users/interfaces"

	"github.com/google/uuid"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrInvalidStatus   = errors.New("invalid task status")
	ErrInvalidPriority = errors.New("invalid task priority")
)

type TaskService struct {
	taskStore      TaskStore
	projectService *projects.ProjectService
	auditLogWriter users_interfaces.AuditLogWriter
}

func NewTaskService(
	taskStore TaskStore,
	projectService *projects.ProjectService,
	auditLogWriter users_interfaces.AuditLogWriter,
) *TaskService {
	return &TaskService{taskStore, projectService, auditLogWriter}
}

func (s *TaskService) CreateTask(
	workspaceID uuid.UUID,
	creatorID uuid.UUID,
	request *CreateTaskRequestDTO,
) (*Task, error) {
	// The project must live in the same workspace the request is scoped to.
	if _, err := s.projectService.GetProject(workspaceID, request.ProjectID); err != nil {
		return nil, err
	}

	priority := request.Priority
	if priority == "" {
		priority = TaskPriorityMedium
	}

	if !priority.IsValid() {
		return nil, ErrInvalidPriority
	}

	task := &Task{
		WorkspaceID: workspaceID,
		ProjectID:   request.ProjectID,
		CreatorID:   creatorID,
		AssigneeID:  request.AssigneeID,
		Title:       request.Title,
		Description: request.Description,
		Priority:    priority,
		Status:      TaskStatusTodo,
		Labels:      request.Labels,
		DueDate:     request.DueDate,
	}

	if err := s.taskStore.CreateTask(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("Task created: %s", task.Title),
		&creatorID,
		&workspaceID,
	)

	return task, nil
}

func (s *TaskService) GetProjectTasks(
	workspaceID uuid.UUID,
	projectID uuid.UUID,
) (*ListTasksResponseDTO, error) {
	if _, err := s.projectService.GetProject(workspaceID, projectID); err != nil {
		return nil, err
	}

	tasks, err := s.taskStore.GetProjectTasks(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return &ListTasksResponseDTO{Tasks: tasks}, nil
}

// GetTask returns the task only when it belongs to the workspace.
func (s *TaskService) GetTask(workspaceID uuid.UUID, taskID uuid.UUID) (*Task, error) {
	task, err := s.taskStore.GetTaskByID(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	if task == nil || task.WorkspaceID != workspaceID {
		return nil, ErrTaskNotFound
	}

	return task, nil
}

func (s *TaskService) UpdateTask(
	workspaceID uuid.UUID,
	taskID uuid.UUID,
	request *UpdateTaskRequestDTO,
	actorID uuid.UUID,
) (*Task, error) {
	task, err := s.GetTask(workspaceID, taskID)
	if err != nil {
		return nil, err
	}

	if request.Status != nil && !request.Status.IsValid() {
		return nil, ErrInvalidStatus
	}
	if request.Priority != nil && !request.Priority.IsValid() {
		return nil, ErrInvalidPriority
	}

	if request.Title != nil {
		task.Title = *request.Title
	}
	if request.Description != nil {
		task.Description = *request.Description
	}
	if request.Priority != nil {
		task.Priority = *request.Priority
	}
	if request.Position != nil {
		task.Position = *request.Position
	}
	if request.Labels != nil {
		task.Labels = request.Labels
	}
	if request.DueDate != nil {
		task.DueDate = request.DueDate
	}

	if request.Status != nil && *request.Status != task.Status {
		s.applyStatusChange(task, *request.Status)
	}

	if err := s.taskStore.UpdateTask(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("Task updated: %s", task.Title),
		&actorID,
		&workspaceID,
	)

	return task, nil
}

func (s *TaskService) AssignTask(
	workspaceID uuid.UUID,
	taskID uuid.UUID,
	request *AssignTaskRequestDTO,
	actorID uuid.UUID,
) (*Task, error) {
	task, err := s.GetTask(workspaceID, taskID)
	if err != nil {
		return nil, err
	}

	task.AssigneeID = request.AssigneeID

	if err := s.taskStore.UpdateTask(task); err != nil {
		return nil, fmt.Errorf("failed to assign task: %w", err)
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("Task assignment changed: %s", task.Title),
		&actorID,
		&workspaceID,
	)

	return task, nil
}

func (s *TaskService) DeleteTask(
	workspaceID uuid.UUID,
	taskID uuid.UUID,
	actorID uuid.UUID,
) error {
	task, err := s.GetTask(workspaceID, taskID)
	if err != nil {
		return err
	}

	if err := s.taskStore.DeleteTask(task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("Task deleted: %s", task.Title),
		&actorID,
		&workspaceID,
	)

	return nil
}

// applyStatusChange stamps completedAt when a task reaches COMPLETED and
// clears it when the task moves back out.
func (s *TaskService) applyStatusChange(task *Task, status TaskStatus) {
	task.Status = status

	if status == TaskStatusCompleted {
		now := time.Now().UTC()
		task.CompletedAt = &now
	} else {
		task.CompletedAt = nil
	}
}
