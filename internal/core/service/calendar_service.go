package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/sitecrew/workforce-scheduler/internal/core/calendar"
	"github.com/sitecrew/workforce-scheduler/internal/core/domain"
	"github.com/sitecrew/workforce-scheduler/internal/core/ports"
)

type CalendarService struct {
	assignments ports.AssignmentRepository
	users       ports.UserRepository
	projects    ports.ProjectRepository
	generations ports.GenerationStore
	log         zerolog.Logger
}

// NewCalendarService builds the calendar read model. generations may be nil,
// in which case every board reports generation 0.
func NewCalendarService(
	assignments ports.AssignmentRepository,
	users ports.UserRepository,
	projects ports.ProjectRepository,
	generations ports.GenerationStore,
	log zerolog.Logger,
) *CalendarService {
	return &CalendarService{
		assignments: assignments,
		users:       users,
		projects:    projects,
		generations: generations,
		log:         log,
	}
}

// AdminBoard returns every assignment in range plus the user and
// in-progress project lists the admin board offers for scheduling.
func (s *CalendarService) AdminBoard(ctx context.Context, in ports.BoardInput) (*ports.Board, error) {
	board, err := s.board(ctx, in)
	if err != nil {
		return nil, err
	}

	board.Users, err = s.users.List(ctx, ports.ListUsersFilter{Order: ports.UsersByFirstName})
	if err != nil {
		return nil, err
	}
	board.Projects, err = s.projects.List(ctx, ports.ListProjectsFilter{
		Status: domain.ProjectInProgress,
		Order:  ports.ProjectsByName,
	})
	if err != nil {
		return nil, err
	}
	return board, nil
}

// EmployeeBoard returns only in.UserID's assignments.
func (s *CalendarService) EmployeeBoard(ctx context.Context, in ports.BoardInput) (*ports.Board, error) {
	if in.UserID == "" {
		return nil, domain.ErrForbidden
	}
	return s.board(ctx, in)
}

func (s *CalendarService) board(ctx context.Context, in ports.BoardInput) (*ports.Board, error) {
	// Take the token first so a slower, older request can never carry a
	// higher generation than this one.
	gen := s.nextGeneration(ctx, in)

	r := calendar.ComputeRange(in.Date, in.View)
	assignments, err := s.assignments.List(ctx, ports.ListAssignmentsFilter{
		From:   r.StartDate(),
		To:     r.EndDate(),
		UserID: in.UserID,
		Expand: true,
	})
	if err != nil {
		return nil, err
	}

	return &ports.Board{
		View:        in.View,
		Date:        calendar.Format(calendar.Truncate(in.Date)),
		Start:       r.StartDate(),
		End:         r.EndDate(),
		Generation:  gen,
		Days:        calendar.Fold(r, assignments),
		Assignments: assignments,
	}, nil
}

func (s *CalendarService) nextGeneration(ctx context.Context, in ports.BoardInput) uint64 {
	if s.generations == nil || in.Scope == "" {
		return 0
	}
	gen, err := s.generations.Next(ctx, "calendar:"+in.Scope)
	if err != nil {
		s.log.Warn().Err(err).Str("scope", in.Scope).Msg("failed to issue calendar generation")
		return 0
	}
	return gen
}
