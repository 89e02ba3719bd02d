package analytics

import (
	"fmt"
	"math"
	"time"

	"taskplane-backend/internal/features/projects"
	"taskplane-backend/internal/features/tasks"
	workspaces_interfaces "taskplane-backend/internal/features/workspaces/interfaces"

	"github.com/google/uuid"
)

type DashboardMetricsDTO struct {
	TotalTasks         int64   `json:"totalTasks"`
	CompletedTasks     int64   `json:"completedTasks"`
	OverdueTasks       int64   `json:"overdueTasks"`
	InProgressTasks    int64   `json:"inProgressTasks"`
	TotalProjects      int64   `json:"totalProjects"`
	ActiveProjects     int64   `json:"activeProjects"`
	TeamMembers        int64   `json:"teamMembers"`
	TaskCompletionRate float64 `json:"taskCompletionRate"`
}

type AnalyticsService struct {
	taskStore       tasks.TaskStore
	projectStore    projects.ProjectStore
	membershipStore workspaces_interfaces.MembershipStore
}

func NewAnalyticsService(
	taskStore tasks.TaskStore,
	projectStore projects.ProjectStore,
	membershipStore workspaces_interfaces.MembershipStore,
) *AnalyticsService {
	return &AnalyticsService{taskStore, projectStore, membershipStore}
}

// GetDashboardMetrics aggregates workspace counters for the dashboard. The
// completion rate is a percentage rounded to two decimals, zero when the
// workspace has no tasks.
func (s *AnalyticsService) GetDashboardMetrics(
	workspaceID uuid.UUID,
) (*DashboardMetricsDTO, error) {
	totalTasks, err := s.taskStore.CountByWorkspace(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	completedTasks, err := s.taskStore.CountByWorkspaceAndStatus(
		workspaceID, tasks.TaskStatusCompleted,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count completed tasks: %w", err)
	}

	inProgressTasks, err := s.taskStore.CountByWorkspaceAndStatus(
		workspaceID, tasks.TaskStatusInProgress,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count in-progress tasks: %w", err)
	}

	overdueTasks, err := s.taskStore.CountOverdue(workspaceID, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to count overdue tasks: %w", err)
	}

	totalProjects, err := s.projectStore.CountByWorkspace(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to count projects: %w", err)
	}

	activeProjects, err := s.projectStore.CountByWorkspaceAndStatus(
		workspaceID, projects.ProjectStatusActive,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count active projects: %w", err)
	}

	memberships, err := s.membershipStore.ListActiveMemberships(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to count members: %w", err)
	}

	var completionRate float64
	if totalTasks > 0 {
		completionRate = math.Round(float64(completedTasks)/float64(totalTasks)*10000) / 100
	}

	return &DashboardMetricsDTO{
		TotalTasks:         totalTasks,
		CompletedTasks:     completedTasks,
		OverdueTasks:       overdueTasks,
		InProgressTasks:    inProgressTasks,
		TotalProjects:      totalProjects,
		ActiveProjects:     activeProjects,
		TeamMembers:        int64(len(memberships)),
		TaskCompletionRate: completionRate,
	}, nil
}
