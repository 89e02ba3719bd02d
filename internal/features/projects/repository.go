package projects

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectStore persists projects. Lookups return (nil, nil) when no matching
// row exists.
type ProjectStore interface {
	CreateProject(project *Project) error
	GetProjectByID(id uuid.UUID) (*Project, error)
	GetWorkspaceProjects(workspaceID uuid.UUID) ([]*Project, error)
	UpdateProject(project *Project) error
	DeleteProject(id uuid.UUID) error
	CountByWorkspace(workspaceID uuid.UUID) (int64, error)
	CountByWorkspaceAndStatus(workspaceID uuid.UUID, status ProjectStatus) (int64, error)
}

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) CreateProject(project *Project) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}

	now := time.Now().UTC()
	if project.CreatedAt.IsZero() {
		project.CreatedAt = now
	}
	project.UpdatedAt = now

	return r.db.Create(project).Error
}

func (r *ProjectRepository) GetProjectByID(id uuid.UUID) (*Project, error) {
	var project Project

	if err := r.db.Where("id = ?", id).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &project, nil
}

func (r *ProjectRepository) GetWorkspaceProjects(workspaceID uuid.UUID) ([]*Project, error) {
	var projects []*Project

	if err := r.db.
		Where("workspace_id = ?", workspaceID).
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		return nil, err
	}

	return projects, nil
}

func (r *ProjectRepository) UpdateProject(project *Project) error {
	project.UpdatedAt = time.Now().UTC()

	return r.db.Save(project).Error
}

func (r *ProjectRepository) DeleteProject(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&Project{}).Error
}

func (r *ProjectRepository) CountByWorkspace(workspaceID uuid.UUID) (int64, error) {
	var count int64

	err := r.db.Model(&Project{}).
		Where("workspace_id = ?", workspaceID).
		Count(&count).Error

	return count, err
}

func (r *ProjectRepository) CountByWorkspaceAndStatus(
	workspaceID uuid.UUID,
	status ProjectStatus,
) (int64, error) {
	var count int64

	err := r.db.Model(&Project{}).
		Where("workspace_id = ? AND status = ?", workspaceID, status).
		Count(&count).Error

	return count, err
}
