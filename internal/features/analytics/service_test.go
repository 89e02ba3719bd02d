package analytics

import (
	"testing"
	"time"

	users_enums "taskplane-backend/internal/features/users/enums"
	"taskplane-backend/internal/features/projects"
	"taskplane-backend/internal/features/tasks"
	workspaces_models "taskplane-backend/internal/features/workspaces/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sliceTaskStore struct {
	tasks []*tasks.Task
}

func (s *sliceTaskStore) CreateTask(*tasks.Task) error                 { return nil }
func (s *sliceTaskStore) GetTaskByID(uuid.UUID) (*tasks.Task, error)   { return nil, nil }
func (s *sliceTaskStore) GetProjectTasks(uuid.UUID) ([]*tasks.Task, error) {
	return nil, nil
}
func (s *sliceTaskStore) GetWorkspaceTasks(uuid.UUID) ([]*tasks.Task, error) {
	return nil, nil
}
func (s *sliceTaskStore) UpdateTask(*tasks.Task) error { return nil }
func (s *sliceTaskStore) DeleteTask(uuid.UUID) error   { return nil }

func (s *sliceTaskStore) CountByWorkspace(workspaceID uuid.UUID) (int64, error) {
	var count int64
	for _, task := range s.tasks {
		if task.WorkspaceID == workspaceID {
			count++
		}
	}
	return count, nil
}

func (s *sliceTaskStore) CountByWorkspaceAndStatus(
	workspaceID uuid.UUID,
	status tasks.TaskStatus,
) (int64, error) {
	var count int64
	for _, task := range s.tasks {
		if task.WorkspaceID == workspaceID && task.Status == status {
			count++
		}
	}
	return count, nil
}

func (s *sliceTaskStore) CountOverdue(workspaceID uuid.UUID, now time.Time) (int64, error) {
	var count int64
	for _, task := range s.tasks {
		if task.WorkspaceID == workspaceID && task.IsOverdue(now) {
			count++
		}
	}
	return count, nil
}

type sliceProjectStore struct {
	projects []*projects.Project
}

func (s *sliceProjectStore) CreateProject(*projects.Project) error { return nil }
func (s *sliceProjectStore) GetProjectByID(uuid.UUID) (*projects.Project, error) {
	return nil, nil
}
func (s *sliceProjectStore) GetWorkspaceProjects(uuid.UUID) ([]*projects.Project, error) {
	return nil, nil
}
func (s *sliceProjectStore) UpdateProject(*projects.Project) error { return nil }
func (s *sliceProjectStore) DeleteProject(uuid.UUID) error         { return nil }

func (s *sliceProjectStore) CountByWorkspace(workspaceID uuid.UUID) (int64, error) {
	var count int64
	for _, project := range s.projects {
		if project.WorkspaceID == workspaceID {
			count++
		}
	}
	return count, nil
}

func (s *sliceProjectStore) CountByWorkspaceAndStatus(
	workspaceID uuid.UUID,
	status projects.ProjectStatus,
) (int64, error) {
	var count int64
	for _, project := range s.projects {
		if project.WorkspaceID == workspaceID && project.Status == status {
			count++
		}
	}
	return count, nil
}

type sliceMembershipStore struct {
	memberships []*workspaces_models.WorkspaceMembership
}

func (s *sliceMembershipStore) CreateMembership(*workspaces_models.WorkspaceMembership) error {
	return nil
}

func (s *sliceMembershipStore) GetActiveMembership(
	uuid.UUID, uuid.UUID,
) (*workspaces_models.WorkspaceMembership, error) {
	return nil, nil
}

func (s *sliceMembershipStore) GetUserMemberships(
	uuid.UUID,
) ([]*workspaces_models.WorkspaceMembership, error) {
	return nil, nil
}

func (s *sliceMembershipStore) ListActiveMemberships(
	workspaceID uuid.UUID,
) ([]*workspaces_models.WorkspaceMembership, error) {
	var result []*workspaces_models.WorkspaceMembership
	for _, membership := range s.memberships {
		if membership.WorkspaceID == workspaceID && membership.IsActive {
			result = append(result, membership)
		}
	}
	return result, nil
}

func (s *sliceMembershipStore) CountActiveByRole(
	uuid.UUID, users_enums.WorkspaceRole,
) (int64, error) {
	return 0, nil
}

func (s *sliceMembershipStore) UpdateMembershipRole(uuid.UUID, users_enums.WorkspaceRole) error {
	return nil
}

func (s *sliceMembershipStore) DeactivateMembership(uuid.UUID) error { return nil }

func TestAnalyticsService_GetDashboardMetrics(t *testing.T) {
	workspaceID := uuid.New()
	otherWorkspaceID := uuid.New()
	overdue := time.Now().UTC().Add(-24 * time.Hour)

	taskStore := &sliceTaskStore{tasks: []*tasks.Task{
		{WorkspaceID: workspaceID, Status: tasks.TaskStatusCompleted},
		{WorkspaceID: workspaceID, Status: tasks.TaskStatusCompleted},
		{WorkspaceID: workspaceID, Status: tasks.TaskStatusInProgress},
		{WorkspaceID: workspaceID, Status: tasks.TaskStatusTodo, DueDate: &overdue},
		{WorkspaceID: otherWorkspaceID, Status: tasks.TaskStatusTodo},
	}}

	projectStore := &sliceProjectStore{projects: []*projects.Project{
		{WorkspaceID: workspaceID, Status: projects.ProjectStatusActive},
		{WorkspaceID: workspaceID, Status: projects.ProjectStatusArchived},
		{WorkspaceID: otherWorkspaceID, Status: projects.ProjectStatusActive},
	}}

	membershipStore := &sliceMembershipStore{
		memberships: []*workspaces_models.WorkspaceMembership{
			{WorkspaceID: workspaceID, IsActive: true},
			{WorkspaceID: workspaceID, IsActive: true},
			{WorkspaceID: workspaceID, IsActive: false},
			{WorkspaceID: otherWorkspaceID, IsActive: true},
		},
	}

	service := NewAnalyticsService(taskStore, projectStore, membershipStore)

	metrics, err := service.GetDashboardMetrics(workspaceID)
	require.NoError(t, err)

	assert.Equal(t, int64(4), metrics.TotalTasks)
	assert.Equal(t, int64(2), metrics.CompletedTasks)
	assert.Equal(t, int64(1), metrics.InProgressTasks)
	assert.Equal(t, int64(1), metrics.OverdueTasks)
	assert.Equal(t, int64(2), metrics.TotalProjects)
	assert.Equal(t, int64(1), metrics.ActiveProjects)
	assert.Equal(t, int64(2), metrics.TeamMembers)
	assert.InDelta(t, 50.0, metrics.TaskCompletionRate, 0.001)
}

func TestAnalyticsService_GetDashboardMetrics_EmptyWorkspace(t *testing.T) {
	service := NewAnalyticsService(
		&sliceTaskStore{}, &sliceProjectStore{}, &sliceMembershipStore{},
	)

	metrics, err := service.GetDashboardMetrics(uuid.New())
	require.NoError(t, err)

	assert.Zero(t, metrics.TotalTasks)
	assert.Zero(t, metrics.TaskCompletionRate, "no tasks must not divide by zero")
}

func TestAnalyticsService_CompletionRateRounding(t *testing.T) {
	workspaceID := uuid.New()

	// 1 of 3 completed: 33.333... rounds to 33.33.
	taskStore := &sliceTaskStore{tasks: []*tasks.Task{
		{WorkspaceID: workspaceID, Status: tasks.TaskStatusCompleted},
		{WorkspaceID: workspaceID, Status: tasks.TaskStatusTodo},
		{WorkspaceID: workspaceID, Status: tasks.TaskStatusTodo},
	}}

	service := NewAnalyticsService(
		taskStore, &sliceProjectStore{}, &sliceMembershipStore{},
	)

	metrics, err := service.GetDashboardMetrics(workspaceID)
	require.NoError(t, err)

	assert.InDelta(t, 33.33, metrics.TaskCompletionRate, 0.001)
}
