package workspaces_services

import (
	"testing"
	"time"

	users_dto "taskplane-backend/internal/features/users/dto"
	users_enums "taskplane-backend/internal/features/users/enums"
	users_models "taskplane-backend/internal/features/users/models"
	workspaces_dto "taskplane-backend/internal/features/workspaces/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type workspaceTestRig struct {
	service         *WorkspaceService
	contextService  *ContextService
	workspaceStore  *fakeWorkspaceStore
	membershipStore *fakeMembershipStore
	userStore       *fakeUserStore
	auditLog        *fakeAuditLogWriter
}

func newWorkspaceTestRig() *workspaceTestRig {
	workspaceStore := newFakeWorkspaceStore()
	membershipStore := newFakeMembershipStore()
	userStore := newFakeUserStore()
	auditLog := &fakeAuditLogWriter{}

	contextService := NewContextService(
		workspaceStore, membershipStore, newFakeCache(), 30*time.Minute,
	)

	return &workspaceTestRig{
		service: NewWorkspaceService(
			workspaceStore, membershipStore, userStore, contextService, auditLog,
		),
		contextService:  contextService,
		workspaceStore:  workspaceStore,
		membershipStore: membershipStore,
		userStore:       userStore,
		auditLog:        auditLog,
	}
}

func (rig *workspaceTestRig) seedUser(email string) *users_dto.UserDTO {
	user := &users_models.User{
		ID:       uuid.New(),
		Email:    email,
		Name:     "User " + email,
		IsActive: true,
	}
	_ = rig.userStore.CreateUser(user)

	return &users_dto.UserDTO{ID: user.ID, Email: user.Email, Name: user.Name}
}

func TestWorkspaceService_CreateWorkspace(t *testing.T) {
	rig := newWorkspaceTestRig()
	creator := rig.seedUser("owner@example.com")

	workspace, err := rig.service.CreateWorkspace(&workspaces_dto.CreateWorkspaceRequestDTO{
		Name: "Acme Corp",
		Slug: "acme",
	}, creator)
	require.NoError(t, err)

	assert.Equal(t, "acme", workspace.Slug)
	require.NotNil(t, workspace.UserRole)
	assert.Equal(t, users_enums.WorkspaceRoleOwner, *workspace.UserRole)

	t.Run("Creator can resolve the workspace as owner", func(t *testing.T) {
		context, err := rig.contextService.ResolveWorkspaceContext(creator.ID, "acme")
		require.NoError(t, err)
		assert.Equal(t, users_enums.WorkspaceRoleOwner, context.Role)
	})

	t.Run("Slug conflict is rejected", func(t *testing.T) {
		_, err := rig.service.CreateWorkspace(&workspaces_dto.CreateWorkspaceRequestDTO{
			Name: "Another Acme",
			Slug: "acme",
		}, rig.seedUser("other@example.com"))
		assert.ErrorIs(t, err, ErrWorkspaceExists)
	})
}

func TestWorkspaceService_GetUserWorkspaces(t *testing.T) {
	rig := newWorkspaceTestRig()
	user := rig.seedUser("member@example.com")

	_, err := rig.service.CreateWorkspace(&workspaces_dto.CreateWorkspaceRequestDTO{
		Name: "First", Slug: "first",
	}, user)
	require.NoError(t, err)

	second, err := rig.service.CreateWorkspace(&workspaces_dto.CreateWorkspaceRequestDTO{
		Name: "Second", Slug: "second",
	}, user)
	require.NoError(t, err)

	t.Run("Both workspaces are listed with the user's role", func(t *testing.T) {
		list, err := rig.service.GetUserWorkspaces(user.ID)
		require.NoError(t, err)
		assert.Len(t, list.Workspaces, 2)
	})

	t.Run("Deactivated workspaces are skipped", func(t *testing.T) {
		require.NoError(t, rig.service.DeactivateWorkspace(second.ID, user.ID))

		list, err := rig.service.GetUserWorkspaces(user.ID)
		require.NoError(t, err)
		require.Len(t, list.Workspaces, 1)
		assert.Equal(t, "first", list.Workspaces[0].Slug)
	})
}

func TestWorkspaceService_Members(t *testing.T) {
	rig := newWorkspaceTestRig()
	owner := rig.seedUser("owner@example.com")
	member := rig.seedUser("member@example.com")

	workspace, err := rig.service.CreateWorkspace(&workspaces_dto.CreateWorkspaceRequestDTO{
		Name: "Acme", Slug: "acme",
	}, owner)
	require.NoError(t, err)

	t.Run("AddMember requires an existing user", func(t *testing.T) {
		_, err := rig.service.AddMember(workspace.ID, &workspaces_dto.AddMemberRequestDTO{
			Email: "ghost@example.com",
			Role:  users_enums.WorkspaceRoleMember,
		}, owner.ID)
		assert.ErrorIs(t, err, ErrMemberNotFound)
	})

	t.Run("AddMember creates an active membership", func(t *testing.T) {
		added, err := rig.service.AddMember(workspace.ID, &workspaces_dto.AddMemberRequestDTO{
			Email: member.Email,
			Role:  users_enums.WorkspaceRoleMember,
		}, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, member.ID, added.UserID)
		assert.Equal(t, users_enums.WorkspaceRoleMember, added.Role)

		context, err := rig.contextService.ResolveWorkspaceContext(member.ID, "acme")
		require.NoError(t, err)
		assert.Equal(t, users_enums.WorkspaceRoleMember, context.Role)
	})

	t.Run("Duplicate membership is rejected", func(t *testing.T) {
		_, err := rig.service.AddMember(workspace.ID, &workspaces_dto.AddMemberRequestDTO{
			Email: member.Email,
			Role:  users_enums.WorkspaceRoleViewer,
		}, owner.ID)
		assert.ErrorIs(t, err, ErrMemberExists)
	})

	t.Run("ListMembers returns both profiles", func(t *testing.T) {
		list, err := rig.service.ListMembers(workspace.ID)
		require.NoError(t, err)
		assert.Len(t, list.Members, 2)
	})

	t.Run("Role change takes effect immediately", func(t *testing.T) {
		// Warm the cache first so the test proves the invalidation.
		_, err := rig.contextService.ResolveWorkspaceContext(member.ID, "acme")
		require.NoError(t, err)

		err = rig.service.ChangeMemberRole(
			workspace.ID, member.ID,
			&workspaces_dto.ChangeMemberRoleRequestDTO{Role: users_enums.WorkspaceRoleAdmin},
			owner.ID,
		)
		require.NoError(t, err)

		context, err := rig.contextService.ResolveWorkspaceContext(member.ID, "acme")
		require.NoError(t, err)
		assert.Equal(t, users_enums.WorkspaceRoleAdmin, context.Role)
	})

	t.Run("Removed member loses access immediately", func(t *testing.T) {
		require.NoError(t, rig.service.RemoveMember(workspace.ID, member.ID, owner.ID))

		_, err := rig.contextService.ResolveWorkspaceContext(member.ID, "acme")
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestWorkspaceService_LastOwnerGuard(t *testing.T) {
	rig := newWorkspaceTestRig()
	owner := rig.seedUser("owner@example.com")
	second := rig.seedUser("second@example.com")

	workspace, err := rig.service.CreateWorkspace(&workspaces_dto.CreateWorkspaceRequestDTO{
		Name: "Acme", Slug: "acme",
	}, owner)
	require.NoError(t, err)

	t.Run("Sole owner cannot be demoted", func(t *testing.T) {
		err := rig.service.ChangeMemberRole(
			workspace.ID, owner.ID,
			&workspaces_dto.ChangeMemberRoleRequestDTO{Role: users_enums.WorkspaceRoleMember},
			owner.ID,
		)
		assert.ErrorIs(t, err, ErrLastOwner)
	})

	t.Run("Sole owner cannot be removed", func(t *testing.T) {
		err := rig.service.RemoveMember(workspace.ID, owner.ID, owner.ID)
		assert.ErrorIs(t, err, ErrLastOwner)
	})

	t.Run("With a second owner the demotion is allowed", func(t *testing.T) {
		_, err := rig.service.AddMember(workspace.ID, &workspaces_dto.AddMemberRequestDTO{
			Email: second.Email,
			Role:  users_enums.WorkspaceRoleOwner,
		}, owner.ID)
		require.NoError(t, err)

		err = rig.service.ChangeMemberRole(
			workspace.ID, owner.ID,
			&workspaces_dto.ChangeMemberRoleRequestDTO{Role: users_enums.WorkspaceRoleMember},
			owner.ID,
		)
		assert.NoError(t, err)
	})
}

func TestWorkspaceService_DeactivateWorkspace(t *testing.T) {
	rig := newWorkspaceTestRig()
	owner := rig.seedUser("owner@example.com")

	workspace, err := rig.service.CreateWorkspace(&workspaces_dto.CreateWorkspaceRequestDTO{
		Name: "Acme", Slug: "acme",
	}, owner)
	require.NoError(t, err)

	_, err = rig.contextService.ResolveWorkspaceContext(owner.ID, "acme")
	require.NoError(t, err)

	require.NoError(t, rig.service.DeactivateWorkspace(workspace.ID, owner.ID))

	t.Run("Resolution is denied after deactivation", func(t *testing.T) {
		_, err := rig.contextService.ResolveWorkspaceContext(owner.ID, "acme")
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("Unknown workspace: not found", func(t *testing.T) {
		err := rig.service.DeactivateWorkspace(uuid.New(), owner.ID)
		assert.ErrorIs(t, err, ErrWorkspaceNotFound)
	})
}
