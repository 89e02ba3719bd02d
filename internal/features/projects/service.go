package projects

import (
	"errors"
	"fmt"

	users_interfaces "taskplane-backend/internal/features/users/interfaces"

	"github.com/google/uuid"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrInvalidStatus   = errors.New("invalid project status")
)

type ProjectService struct {
	projectStore   ProjectStore
	auditLogWriter users_interfaces.AuditLogWriter
}

func NewProjectService(
	projectStore ProjectStore,
	auditLogWriter users_interfaces.AuditLogWriter,
) *ProjectService {
	return &ProjectService{projectStore, auditLogWriter}
}

func (s *ProjectService) CreateProject(
	workspaceID uuid.UUID,
	ownerID uuid.UUID,
	request *CreateProjectRequestDTO,
) (*Project, error) {
	project := &Project{
		WorkspaceID: workspaceID,
		OwnerID:     ownerID,
		Name:        request.Name,
		Description: request.Description,
		Color:       request.Color,
		Status:      ProjectStatusActive,
	}

	if err := s.projectStore.CreateProject(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("Project created: %s", project.Name),
		&ownerID,
		&workspaceID,
	)

	return project, nil
}

func (s *ProjectService) GetWorkspaceProjects(
	workspaceID uuid.UUID,
) (*ListProjectsResponseDTO, error) {
	projects, err := s.projectStore.GetWorkspaceProjects(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	return &ListProjectsResponseDTO{Projects: projects}, nil
}

// GetProject returns the project only when it belongs to the workspace.
// A project ID from another workspace is indistinguishable from a missing
// one.
func (s *ProjectService) GetProject(
	workspaceID uuid.UUID,
	projectID uuid.UUID,
) (*Project, error) {
	project, err := s.projectStore.GetProjectByID(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	if project == nil || project.WorkspaceID != workspaceID {
		return nil, ErrProjectNotFound
	}

	return project, nil
}

func (s *ProjectService) UpdateProject(
	workspaceID uuid.UUID,
	projectID uuid.UUID,
	request *UpdateProjectRequestDTO,
	actorID uuid.UUID,
) (*Project, error) {
	project, err := s.GetProject(workspaceID, projectID)
	if err != nil {
		return nil, err
	}

	if request.Status != nil && !request.Status.IsValid() {
		return nil, ErrInvalidStatus
	}

	if request.Name != nil {
		project.Name = *request.Name
	}
	if request.Description != nil {
		project.Description = *request.Description
	}
	if request.Color != nil {
		project.Color = *request.Color
	}
	if request.Status != nil {
		project.Status = *request.Status
	}

	if err := s.projectStore.UpdateProject(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("Project updated: %s", project.Name),
		&actorID,
		&workspaceID,
	)

	return project, nil
}

func (s *ProjectService) DeleteProject(
	workspaceID uuid.UUID,
	projectID uuid.UUID,
	actorID uuid.UUID,
) error {
	project, err := s.GetProject(workspaceID, projectID)
	if err != nil {
		return err
	}

	if err := s.projectStore.DeleteProject(project.ID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("Project deleted: %s", project.Name),
		&actorID,
		&workspaceID,
	)

	return nil
}
