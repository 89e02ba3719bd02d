package workspaces_repositories

import (
	"errors"
	"time"

	users_enums "taskplane-backend/internal/features/users/enums"
	workspaces_models "taskplane-backend/internal/features/workspaces/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MembershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

func (r *MembershipRepository) CreateMembership(
	membership *workspaces_models.WorkspaceMembership,
) error {
	if membership.ID == uuid.Nil {
		membership.ID = uuid.New()
	}

	if membership.JoinedAt.IsZero() {
		membership.JoinedAt = time.Now().UTC()
	}

	return r.db.Create(membership).Error
}

func (r *MembershipRepository) GetActiveMembership(
	workspaceID uuid.UUID,
	userID uuid.UUID,
) (*workspaces_models.WorkspaceMembership, error) {
	var membership workspaces_models.WorkspaceMembership

	if err := r.db.
		Where("workspace_id = ? AND user_id = ? AND is_active = ?", workspaceID, userID, true).
		First(&membership).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &membership, nil
}

func (r *MembershipRepository) GetUserMemberships(
	userID uuid.UUID,
) ([]*workspaces_models.WorkspaceMembership, error) {
	var memberships []*workspaces_models.WorkspaceMembership

	if err := r.db.
		Where("user_id = ? AND is_active = ?", userID, true).
		Find(&memberships).Error; err != nil {
		return nil, err
	}

	return memberships, nil
}

func (r *MembershipRepository) ListActiveMemberships(
	workspaceID uuid.UUID,
) ([]*workspaces_models.WorkspaceMembership, error) {
	var memberships []*workspaces_models.WorkspaceMembership

	if err := r.db.
		Where("workspace_id = ? AND is_active = ?", workspaceID, true).
		Order("joined_at ASC").
		Find(&memberships).Error; err != nil {
		return nil, err
	}

	return memberships, nil
}

func (r *MembershipRepository) CountActiveByRole(
	workspaceID uuid.UUID,
	role users_enums.WorkspaceRole,
) (int64, error) {
	var count int64

	if err := r.db.Model(&workspaces_models.WorkspaceMembership{}).
		Where("workspace_id = ? AND role = ? AND is_active = ?", workspaceID, role, true).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *MembershipRepository) UpdateMembershipRole(
	membershipID uuid.UUID,
	role users_enums.WorkspaceRole,
) error {
	return r.db.Model(&workspaces_models.WorkspaceMembership{}).
		Where("id = ?", membershipID).
		Update("role", role).Error
}

func (r *MembershipRepository) DeactivateMembership(membershipID uuid.UUID) error {
	return r.db.Model(&workspaces_models.WorkspaceMembership{}).
		Where("id = ?", membershipID).
		Update("is_active", false).Error
}
