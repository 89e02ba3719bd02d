package workspaces_services

import (
	"fmt"
	"time"

	users_dto "taskplane-backend/internal/features/users/dto"
	users_enums "taskplane-backend/internal/features/users/enums"
	users_interfaces "taskplane-backend/internal/features/users/interfaces"
	workspaces_dto "taskplane-backend/internal/features/workspaces/dto"
	workspaces_interfaces "taskplane-backend/internal/features/workspaces/interfaces"
	workspaces_models "taskplane-backend/internal/features/workspaces/models"

	"github.com/google/uuid"
)

type WorkspaceService struct {
	workspaceStore  workspaces_interfaces.WorkspaceStore
	membershipStore workspaces_interfaces.MembershipStore
	userStore       users_interfaces.UserStore
	contextService  *ContextService
	auditLogWriter  users_interfaces.AuditLogWriter
}

func NewWorkspaceService(
	workspaceStore workspaces_interfaces.WorkspaceStore,
	membershipStore workspaces_interfaces.MembershipStore,
	userStore users_interfaces.UserStore,
	contextService *ContextService,
	auditLogWriter users_interfaces.AuditLogWriter,
) *WorkspaceService {
	return &WorkspaceService{
		workspaceStore,
		membershipStore,
		userStore,
		contextService,
		auditLogWriter,
	}
}

// CreateWorkspace creates an active workspace and makes the creator its
// owner.
func (s *WorkspaceService) CreateWorkspace(
	request *workspaces_dto.CreateWorkspaceRequestDTO,
	creator *users_dto.UserDTO,
) (*workspaces_dto.WorkspaceResponseDTO, error) {
	existing, err := s.workspaceStore.GetWorkspaceBySlug(request.Slug)
	if err != nil {
		return nil, fmt.Errorf("failed to check workspace slug: %w", err)
	}

	if existing != nil {
		return nil, ErrWorkspaceExists
	}

	workspace := &workspaces_models.Workspace{
		ID:        uuid.New(),
		Slug:      request.Slug,
		Name:      request.Name,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.workspaceStore.CreateWorkspace(workspace); err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	membership := &workspaces_models.WorkspaceMembership{
		UserID:      creator.ID,
		WorkspaceID: workspace.ID,
		Role:        users_enums.WorkspaceRoleOwner,
		IsActive:    true,
		JoinedAt:    time.Now().UTC(),
	}

	if err := s.membershipStore.CreateMembership(membership); err != nil {
		return nil, fmt.Errorf("failed to create workspace membership: %w", err)
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("Workspace created: %s", workspace.Name),
		&creator.ID,
		&workspace.ID,
	)

	ownerRole := users_enums.WorkspaceRoleOwner

	return &workspaces_dto.WorkspaceResponseDTO{
		ID:        workspace.ID,
		Slug:      workspace.Slug,
		Name:      workspace.Name,
		Avatar:    workspace.Avatar,
		CreatedAt: workspace.CreatedAt,
		UserRole:  &ownerRole,
	}, nil
}

// GetUserWorkspaces lists every active workspace the user is an active
// member of, with the user's role in each.
func (s *WorkspaceService) GetUserWorkspaces(
	userID uuid.UUID,
) (*workspaces_dto.ListWorkspacesResponseDTO, error) {
	memberships, err := s.membershipStore.GetUserMemberships(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user memberships: %w", err)
	}

	workspaces := make([]*workspaces_dto.WorkspaceResponseDTO, 0, len(memberships))

	for _, membership := range memberships {
		workspace, err := s.workspaceStore.GetWorkspaceByID(membership.WorkspaceID)
		if err != nil {
			return nil, fmt.Errorf("failed to get workspace: %w", err)
		}

		if workspace == nil || !workspace.IsActive {
			continue
		}

		role := membership.Role
		workspaces = append(workspaces, &workspaces_dto.WorkspaceResponseDTO{
			ID:        workspace.ID,
			Slug:      workspace.Slug,
			Name:      workspace.Name,
			Avatar:    workspace.Avatar,
			CreatedAt: workspace.CreatedAt,
			UserRole:  &role,
		})
	}

	return &workspaces_dto.ListWorkspacesResponseDTO{Workspaces: workspaces}, nil
}

// UpdateWorkspace applies partial updates to name and avatar.
func (s *WorkspaceService) UpdateWorkspace(
	workspaceID uuid.UUID,
	request *workspaces_dto.UpdateWorkspaceRequestDTO,
	actorID uuid.UUID,
) (*workspaces_models.Workspace, error) {
	workspace, err := s.workspaceStore.GetWorkspaceByID(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}

	if workspace == nil {
		return nil, ErrWorkspaceNotFound
	}

	if request.Name != nil {
		workspace.Name = *request.Name
	}
	if request.Avatar != nil {
		workspace.Avatar = request.Avatar
	}

	if err := s.workspaceStore.UpdateWorkspace(workspace); err != nil {
		return nil, fmt.Errorf("failed to update workspace: %w", err)
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("Workspace updated: %s", workspace.Name),
		&actorID,
		&workspaceID,
	)

	return workspace, nil
}

// DeactivateWorkspace soft-deletes the workspace. Cached contexts for its
// members expire by TTL; resolution fails immediately because the workspace
// row is no longer active.
func (s *WorkspaceService) DeactivateWorkspace(workspaceID uuid.UUID, actorID uuid.UUID) error {
	workspace, err := s.workspaceStore.GetWorkspaceByID(workspaceID)
	if err != nil {
		return fmt.Errorf("failed to get workspace: %w", err)
	}

	if workspace == nil {
		return ErrWorkspaceNotFound
	}

	workspace.IsActive = false

	if err := s.workspaceStore.UpdateWorkspace(workspace); err != nil {
		return fmt.Errorf("failed to deactivate workspace: %w", err)
	}

	memberships, err := s.membershipStore.ListActiveMemberships(workspaceID)
	if err != nil {
		return fmt.Errorf("failed to list members: %w", err)
	}

	for _, membership := range memberships {
		s.contextService.Invalidate(membership.UserID, workspace.Slug)
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("Workspace deactivated: %s", workspace.Name),
		&actorID,
		&workspaceID,
	)

	return nil
}

// ListMembers returns the active members with their user profiles.
func (s *WorkspaceService) ListMembers(
	workspaceID uuid.UUID,
) (*workspaces_dto.ListMembersResponseDTO, error) {
	memberships, err := s.membershipStore.ListActiveMemberships(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	members := make([]*workspaces_dto.MemberResponseDTO, 0, len(memberships))

	for _, membership := range memberships {
		user, err := s.userStore.GetUserByID(membership.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to get member profile: %w", err)
		}

		if user == nil {
			continue
		}

		members = append(members, &workspaces_dto.MemberResponseDTO{
			UserID:   user.ID,
			Email:    user.Email,
			Name:     user.Name,
			Avatar:   user.Avatar,
			Role:     membership.Role,
			JoinedAt: membership.JoinedAt,
		})
	}

	return &workspaces_dto.ListMembersResponseDTO{Members: members}, nil
}

// AddMember adds an existing user to the workspace by email.
func (s *WorkspaceService) AddMember(
	workspaceID uuid.UUID,
	request *workspaces_dto.AddMemberRequestDTO,
	actorID uuid.UUID,
) (*workspaces_dto.MemberResponseDTO, error) {
	if !request.Role.IsValid() {
		return nil, fmt.Errorf("invalid workspace role: %s", request.Role)
	}

	user, err := s.userStore.GetUserByEmail(request.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if user == nil || !user.IsActive {
		return nil, ErrMemberNotFound
	}

	existing, err := s.membershipStore.GetActiveMembership(workspaceID, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}

	if existing != nil {
		return nil, ErrMemberExists
	}

	membership := &workspaces_models.WorkspaceMembership{
		UserID:      user.ID,
		WorkspaceID: workspaceID,
		Role:        request.Role,
		IsActive:    true,
		JoinedAt:    time.Now().UTC(),
	}

	if err := s.membershipStore.CreateMembership(membership); err != nil {
		return nil, fmt.Errorf("failed to create membership: %w", err)
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("Member added: %s as %s", user.Email, request.Role),
		&actorID,
		&workspaceID,
	)

	return &workspaces_dto.MemberResponseDTO{
		UserID:   user.ID,
		Email:    user.Email,
		Name:     user.Name,
		Avatar:   user.Avatar,
		Role:     membership.Role,
		JoinedAt: membership.JoinedAt,
	}, nil
}

// ChangeMemberRole updates a member's role and drops their cached context so
// the new permission list takes effect immediately.
func (s *WorkspaceService) ChangeMemberRole(
	workspaceID uuid.UUID,
	memberUserID uuid.UUID,
	request *workspaces_dto.ChangeMemberRoleRequestDTO,
	actorID uuid.UUID,
) error {
	if !request.Role.IsValid() {
		return fmt.Errorf("invalid workspace role: %s", request.Role)
	}

	membership, err := s.membershipStore.GetActiveMembership(workspaceID, memberUserID)
	if err != nil {
		return fmt.Errorf("failed to get membership: %w", err)
	}

	if membership == nil {
		return ErrMemberNotFound
	}

	if membership.Role == users_enums.WorkspaceRoleOwner &&
		request.Role != users_enums.WorkspaceRoleOwner {
		if err := s.ensureNotLastOwner(workspaceID); err != nil {
			return err
		}
	}

	if err := s.membershipStore.UpdateMembershipRole(membership.ID, request.Role); err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}

	s.invalidateMemberContext(workspaceID, memberUserID)

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("Member role changed to %s", request.Role),
		&actorID,
		&workspaceID,
	)

	return nil
}

// RemoveMember deactivates the membership and drops the member's cached
// context.
func (s *WorkspaceService) RemoveMember(
	workspaceID uuid.UUID,
	memberUserID uuid.UUID,
	actorID uuid.UUID,
) error {
	membership, err := s.membershipStore.GetActiveMembership(workspaceID, memberUserID)
	if err != nil {
		return fmt.Errorf("failed to get membership: %w", err)
	}

	if membership == nil {
		return ErrMemberNotFound
	}

	if membership.Role == users_enums.WorkspaceRoleOwner {
		if err := s.ensureNotLastOwner(workspaceID); err != nil {
			return err
		}
	}

	if err := s.membershipStore.DeactivateMembership(membership.ID); err != nil {
		return fmt.Errorf("failed to deactivate membership: %w", err)
	}

	s.invalidateMemberContext(workspaceID, memberUserID)

	s.auditLogWriter.WriteAuditLog("Member removed from workspace", &actorID, &workspaceID)

	return nil
}

func (s *WorkspaceService) ensureNotLastOwner(workspaceID uuid.UUID) error {
	owners, err := s.membershipStore.CountActiveByRole(
		workspaceID,
		users_enums.WorkspaceRoleOwner,
	)
	if err != nil {
		return fmt.Errorf("failed to count owners: %w", err)
	}

	if owners <= 1 {
		return ErrLastOwner
	}

	return nil
}

func (s *WorkspaceService) invalidateMemberContext(workspaceID uuid.UUID, userID uuid.UUID) {
	workspace, err := s.workspaceStore.GetWorkspaceByID(workspaceID)
	if err != nil || workspace == nil {
		// Slug unknown, fall back to dropping every context for the user.
		s.contextService.InvalidateUser(userID)
		return
	}

	s.contextService.Invalidate(userID, workspace.Slug)
}
