package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sitecrew/workforce-scheduler/internal/api/metrics"
	"github.com/sitecrew/workforce-scheduler/internal/core/calendar"
	"github.com/sitecrew/workforce-scheduler/internal/core/domain"
	"github.com/sitecrew/workforce-scheduler/internal/core/ports"
)

// AssignmentService implements the three ways an admin schedules people:
// the single-assignment form, the multi-user project form, and the
// drag-and-drop move.
type AssignmentService struct {
	assignments ports.AssignmentRepository
	users       ports.UserRepository
	projects    ports.ProjectRepository
	activity    ports.ActivityQueue
	log         zerolog.Logger
}

func NewAssignmentService(
	assignments ports.AssignmentRepository,
	users ports.UserRepository,
	projects ports.ProjectRepository,
	activity ports.ActivityQueue,
	log zerolog.Logger,
) *AssignmentService {
	return &AssignmentService{
		assignments: assignments,
		users:       users,
		projects:    projects,
		activity:    activity,
		log:         log,
	}
}

// Create schedules one user. It refuses when the user already works
// anywhere on that date. The check and the insert are not atomic.
func (s *AssignmentService) Create(ctx context.Context, in ports.CreateAssignmentInput) (*domain.Assignment, error) {
	date, err := canonicalDate(in.Date)
	if err != nil {
		return nil, err
	}
	if err := s.ensureRefs(ctx, in.ProjectID, in.UserID); err != nil {
		return nil, err
	}

	n, err := s.assignments.Count(ctx, ports.ListAssignmentsFilter{UserID: in.UserID, From: date, To: date})
	if err != nil {
		return nil, fmt.Errorf("create assignment: %w", err)
	}
	if n > 0 {
		return nil, domain.ErrDuplicateAssignment
	}

	a := newAssignment(in.UserID, in.ProjectID, date, in.Notes)
	if err := s.assignments.Create(ctx, &a); err != nil {
		return nil, err
	}

	s.logCreated(a, "single")
	record(s.activity, domain.ActivityAssignmentCreated, in.ActorID, a.ID, a.Date)
	return &a, nil
}

// CreateBatch schedules every selected user on one project for one day.
// Users already working elsewhere that day are not blocked. A user selected
// twice is only scheduled once, and users already on that project that day
// are skipped. ErrAlreadyAssigned is returned when nobody is left to add.
func (s *AssignmentService) CreateBatch(ctx context.Context, in ports.BatchAssignmentInput) ([]domain.Assignment, error) {
	if len(in.UserIDs) == 0 {
		return nil, domain.ErrEmptySelection
	}
	date, err := canonicalDate(in.Date)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(in.UserIDs))
	userIDs := make([]string, 0, len(in.UserIDs))
	for _, id := range in.UserIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		userIDs = append(userIDs, id)
	}
	if err := s.ensureRefs(ctx, in.ProjectID, userIDs...); err != nil {
		return nil, err
	}

	existing, err := s.assignments.List(ctx, ports.ListAssignmentsFilter{ProjectID: in.ProjectID, From: date, To: date})
	if err != nil {
		return nil, fmt.Errorf("create batch: %w", err)
	}
	onCell := make(map[string]struct{}, len(existing))
	for _, a := range existing {
		onCell[a.UserID] = struct{}{}
	}

	batch := make([]domain.Assignment, 0, len(userIDs))
	for _, uid := range userIDs {
		if _, ok := onCell[uid]; ok {
			continue
		}
		batch = append(batch, newAssignment(uid, in.ProjectID, date, in.Notes))
	}
	skipped := len(userIDs) - len(batch)
	if len(batch) == 0 {
		return nil, domain.ErrAlreadyAssigned
	}
	if err := s.assignments.CreateMany(ctx, batch); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("project_id", in.ProjectID).
		Str("date", date).
		Int("count", len(batch)).
		Int("skipped", skipped).
		Msg("assignments created")
	metrics.AssignmentsCreatedTotal.WithLabelValues("batch").Add(float64(len(batch)))

	entries := make([]domain.Activity, 0, len(batch))
	for _, a := range batch {
		entries = append(entries, newActivity(domain.ActivityAssignmentCreated, in.ActorID, a.ID, a.Date))
	}
	recordBatch(s.activity, entries)
	return batch, nil
}

// MoveUserToProject is the drag-and-drop command: drop userID on a project
// column of a given day. Dropping onto a cell the user already occupies is
// reported, not failed.
func (s *AssignmentService) MoveUserToProject(ctx context.Context, userID string, target ports.MoveTarget, actorID string) (*ports.MoveResult, error) {
	date, err := canonicalDate(target.Date)
	if err != nil {
		return nil, err
	}

	n, err := s.assignments.Count(ctx, ports.ListAssignmentsFilter{
		UserID:    userID,
		ProjectID: target.ProjectID,
		From:      date,
		To:        date,
	})
	if err != nil {
		return nil, fmt.Errorf("move user: %w", err)
	}
	if n > 0 {
		s.log.Debug().Str("user_id", userID).Str("project_id", target.ProjectID).Str("date", date).Msg("move skipped, already assigned")
		metrics.MovesSkippedTotal.Inc()
		return &ports.MoveResult{Created: false, Message: domain.ErrAlreadyAssigned.Error()}, nil
	}

	if err := s.ensureRefs(ctx, target.ProjectID, userID); err != nil {
		return nil, err
	}
	a := newAssignment(userID, target.ProjectID, date, "")
	if err := s.assignments.Create(ctx, &a); err != nil {
		return nil, err
	}

	s.logCreated(a, "move")
	record(s.activity, domain.ActivityAssignmentCreated, actorID, a.ID, a.Date)
	return &ports.MoveResult{Created: true, Assignment: &a, Message: "user added to project"}, nil
}

func (s *AssignmentService) UpdateNotes(ctx context.Context, id, notes, actorID string) (*domain.Assignment, error) {
	notes = strings.TrimSpace(notes)
	if err := s.assignments.UpdateNotes(ctx, id, notes); err != nil {
		return nil, err
	}
	a, err := s.assignments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	record(s.activity, domain.ActivityAssignmentUpdated, actorID, id, "")
	return a, nil
}

func (s *AssignmentService) Delete(ctx context.Context, id, actorID string) error {
	a, err := s.assignments.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.assignments.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("assignment_id", id).Str("user_id", a.UserID).Str("date", a.Date).Msg("assignment deleted")
	metrics.AssignmentsDeletedTotal.Inc()
	record(s.activity, domain.ActivityAssignmentDeleted, actorID, id, a.Date)
	return nil
}

// ensureRefs checks that the project and every user exist.
func (s *AssignmentService) ensureRefs(ctx context.Context, projectID string, userIDs ...string) error {
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return err
	}
	for _, id := range userIDs {
		if _, err := s.users.FindByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (s *AssignmentService) logCreated(a domain.Assignment, flow string) {
	s.log.Info().
		Str("assignment_id", a.ID).
		Str("user_id", a.UserID).
		Str("project_id", a.ProjectID).
		Str("date", a.Date).
		Str("flow", flow).
		Msg("assignment created")
	metrics.AssignmentsCreatedTotal.WithLabelValues(flow).Inc()
}

func newAssignment(userID, projectID, date, notes string) domain.Assignment {
	return domain.Assignment{
		ID:        uuid.NewString(),
		UserID:    userID,
		ProjectID: projectID,
		Date:      date,
		Notes:     strings.TrimSpace(notes),
		CreatedAt: nowUTC(),
	}
}

func canonicalDate(s string) (string, error) {
	d, err := calendar.ParseDate(s)
	if err != nil {
		return "", err
	}
	return calendar.Format(d), nil
}
