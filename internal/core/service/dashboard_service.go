package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/sitecrew/workforce-scheduler/internal/core/calendar"
	"github.com/sitecrew/workforce-scheduler/internal/core/domain"
	"github.com/sitecrew/workforce-scheduler/internal/core/ports"
)

const recentAssignments = 10

type DashboardService struct {
	users       ports.UserRepository
	projects    ports.ProjectRepository
	assignments ports.AssignmentRepository
	access      ports.ProjectService
	log         zerolog.Logger
}

func NewDashboardService(
	users ports.UserRepository,
	projects ports.ProjectRepository,
	assignments ports.AssignmentRepository,
	access ports.ProjectService,
	log zerolog.Logger,
) *DashboardService {
	return &DashboardService{
		users:       users,
		projects:    projects,
		assignments: assignments,
		access:      access,
		log:         log,
	}
}

func (s *DashboardService) AdminStats(ctx context.Context, today time.Time) (*ports.AdminStats, error) {
	var (
		stats ports.AdminStats
		err   error
	)
	if stats.TotalUsers, err = s.users.Count(ctx, ports.ListUsersFilter{}); err != nil {
		return nil, err
	}
	if stats.PresentUsers, err = s.users.Count(ctx, ports.ListUsersFilter{Status: domain.StatusPresent}); err != nil {
		return nil, err
	}
	if stats.AbsentUsers, err = s.users.Count(ctx, ports.ListUsersFilter{Status: domain.StatusAbsent}); err != nil {
		return nil, err
	}
	if stats.ActiveProjects, err = s.projects.Count(ctx, ports.ListProjectsFilter{Status: domain.ProjectInProgress}); err != nil {
		return nil, err
	}
	day := calendar.Format(calendar.Truncate(today))
	if stats.TodayAssignments, err = s.assignments.Count(ctx, ports.ListAssignmentsFilter{From: day, To: day}); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Employee gathers today's, this week's and this month's assignments of
// userID, the most recent ones, and the projects the user may browse.
func (s *DashboardService) Employee(ctx context.Context, userID string, today time.Time) (*ports.EmployeeDashboard, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := &ports.EmployeeDashboard{Role: user.Role}
	for _, w := range []struct {
		g   calendar.Granularity
		dst *[]domain.Assignment
	}{
		{calendar.Day, &out.Today},
		{calendar.Week, &out.Week},
		{calendar.Month, &out.Month},
	} {
		r := calendar.ComputeRange(today, w.g)
		*w.dst, err = s.assignments.List(ctx, ports.ListAssignmentsFilter{
			UserID: userID,
			From:   r.StartDate(),
			To:     r.EndDate(),
			Expand: true,
		})
		if err != nil {
			return nil, err
		}
	}

	out.Recent, err = s.assignments.List(ctx, ports.ListAssignmentsFilter{
		UserID: userID,
		Newest: true,
		Limit:  recentAssignments,
		Expand: true,
	})
	if err != nil {
		return nil, err
	}

	out.Projects, err = s.access.Accessible(ctx, userID, user.Role)
	if err != nil {
		return nil, err
	}
	return out, nil
}
