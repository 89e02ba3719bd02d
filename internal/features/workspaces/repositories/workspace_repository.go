package workspaces_repositories

import (
	"errors"
	"time"

	workspaces_models "taskplane-backend/internal/features/workspaces/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WorkspaceRepository struct {
	db *gorm.DB
}

func NewWorkspaceRepository(db *gorm.DB) *WorkspaceRepository {
	return &WorkspaceRepository{db: db}
}

func (r *WorkspaceRepository) CreateWorkspace(workspace *workspaces_models.Workspace) error {
	if workspace.ID == uuid.Nil {
		workspace.ID = uuid.New()
	}

	if workspace.CreatedAt.IsZero() {
		workspace.CreatedAt = time.Now().UTC()
	}

	return r.db.Create(workspace).Error
}

func (r *WorkspaceRepository) GetWorkspaceByID(
	id uuid.UUID,
) (*workspaces_models.Workspace, error) {
	var workspace workspaces_models.Workspace

	if err := r.db.Where("id = ?", id).First(&workspace).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &workspace, nil
}

func (r *WorkspaceRepository) GetWorkspaceBySlug(
	slug string,
) (*workspaces_models.Workspace, error) {
	var workspace workspaces_models.Workspace

	if err := r.db.Where("slug = ?", slug).First(&workspace).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &workspace, nil
}

func (r *WorkspaceRepository) GetActiveWorkspaceBySlug(
	slug string,
) (*workspaces_models.Workspace, error) {
	var workspace workspaces_models.Workspace

	if err := r.db.Where("slug = ? AND is_active = ?", slug, true).
		First(&workspace).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &workspace, nil
}

func (r *WorkspaceRepository) UpdateWorkspace(workspace *workspaces_models.Workspace) error {
	return r.db.Save(workspace).Error
}
