package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sitecrew/workforce-scheduler/internal/api/metrics"
	"github.com/sitecrew/workforce-scheduler/internal/core/calendar"
	"github.com/sitecrew/workforce-scheduler/internal/core/domain"
	"github.com/sitecrew/workforce-scheduler/internal/core/ports"
)

type UserService struct {
	users       ports.UserRepository
	assignments ports.AssignmentRepository
	sessions    SessionManager
	activity    ports.ActivityQueue
	log         zerolog.Logger
}

func NewUserService(users ports.UserRepository, assignments ports.AssignmentRepository, sessions SessionManager, activity ports.ActivityQueue, log zerolog.Logger) *UserService {
	return &UserService{users: users, assignments: assignments, sessions: sessions, activity: activity, log: log}
}

func (s *UserService) List(ctx context.Context, filter ports.ListUsersFilter) ([]domain.User, error) {
	return s.users.List(ctx, filter)
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) Update(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.FirstName != nil {
		v := strings.TrimSpace(*in.FirstName)
		if v == "" {
			return nil, fmt.Errorf("%w: first name is required", domain.ErrInvalidInput)
		}
		user.FirstName = v
	}
	if in.LastName != nil {
		v := strings.TrimSpace(*in.LastName)
		if v == "" {
			return nil, fmt.Errorf("%w: last name is required", domain.ErrInvalidInput)
		}
		user.LastName = v
	}
	if in.Role != nil {
		if !in.Role.Valid() {
			return nil, fmt.Errorf("%w: role %q", domain.ErrInvalidInput, *in.Role)
		}
		user.Role = *in.Role
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, fmt.Errorf("%w: status %q", domain.ErrInvalidInput, *in.Status)
		}
		user.Status = *in.Status
	}

	if err := s.save(ctx, user, in.ActorID); err != nil {
		return nil, err
	}
	return user, nil
}

// TogglePresence flips the user between present and absent.
func (s *UserService) TogglePresence(ctx context.Context, id, actorID string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Status = user.Status.Toggle()

	if err := s.save(ctx, user, actorID); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the user, their assignments and their sessions.
func (s *UserService) Delete(ctx context.Context, id, actorID string) error {
	if id == actorID {
		return domain.ErrSelfDelete
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	removed, err := s.assignments.DeleteByUser(ctx, id)
	if err != nil {
		return fmt.Errorf("delete user assignments: %w", err)
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.sessions.Revoke(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("user_id", id).Msg("failed to revoke sessions of deleted user")
	}

	s.log.Info().Str("user_id", id).Int64("assignments_removed", removed).Msg("user deleted")
	metrics.AssignmentsDeletedTotal.Add(float64(removed))
	record(s.activity, domain.ActivityUserDeleted, actorID, id, user.FullName())
	return nil
}

// Available lists users for the assignment panel, ordered by first name.
// The status filter defaults to present.
func (s *UserService) Available(ctx context.Context, in ports.AvailableUsersInput) ([]domain.User, error) {
	users, err := s.users.List(ctx, ports.ListUsersFilter{Order: ports.UsersByFirstName})
	if err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = string(domain.StatusPresent)
	}
	filter := calendar.UserFilter{Search: in.Search, Role: in.Role, Status: status}

	var assignments []domain.Assignment
	if in.ExcludeAssigned {
		day := calendar.Truncate(in.Date)
		date := calendar.Format(day)
		assignments, err = s.assignments.List(ctx, ports.ListAssignmentsFilter{From: date, To: date})
		if err != nil {
			return nil, err
		}
		filter.ExcludeAssignedOn = &day
	}

	return calendar.FilterAvailableUsers(users, assignments, filter), nil
}

func (s *UserService) save(ctx context.Context, user *domain.User, actorID string) error {
	user.UpdatedAt = nowUTC()
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	if err := s.sessions.Refresh(ctx, *user); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to refresh sessions")
	}

	s.log.Info().
		Str("user_id", user.ID).
		Str("role", string(user.Role)).
		Str("status", string(user.Status)).
		Msg("user updated")
	record(s.activity, domain.ActivityUserUpdated, actorID, user.ID, string(user.Status))
	return nil
}
