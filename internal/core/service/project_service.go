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

type ProjectService struct {
	projects    ports.ProjectRepository
	assignments ports.AssignmentRepository
	activity    ports.ActivityQueue
	log         zerolog.Logger
}

func NewProjectService(projects ports.ProjectRepository, assignments ports.AssignmentRepository, activity ports.ActivityQueue, log zerolog.Logger) *ProjectService {
	return &ProjectService{projects: projects, assignments: assignments, activity: activity, log: log}
}

func (s *ProjectService) List(ctx context.Context, filter ports.ListProjectsFilter) ([]domain.Project, error) {
	return s.projects.List(ctx, filter)
}

func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.FindByID(ctx, id)
}

func (s *ProjectService) Create(ctx context.Context, in ports.CreateProjectInput) (*domain.Project, error) {
	now := nowUTC()
	p := &domain.Project{
		ID:             uuid.NewString(),
		Name:           strings.TrimSpace(in.Name),
		Description:    strings.TrimSpace(in.Description),
		Location:       strings.TrimSpace(in.Location),
		Status:         in.Status,
		Color:          in.Color,
		StartDate:      in.StartDate,
		EndDate:        in.EndDate,
		WazeLink:       strings.TrimSpace(in.WazeLink),
		GoogleMapsLink: strings.TrimSpace(in.GoogleMapsLink),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if p.Status == "" {
		p.Status = domain.ProjectPending
	}
	if p.Color == "" {
		p.Color = domain.DefaultProjectColor()
	}
	if err := validateProject(p); err != nil {
		return nil, err
	}

	if err := s.projects.Create(ctx, p); err != nil {
		return nil, err
	}

	s.log.Info().Str("project_id", p.ID).Str("status", string(p.Status)).Msg("project created")
	record(s.activity, domain.ActivityProjectCreated, in.ActorID, p.ID, p.Name)
	return p, nil
}

func (s *ProjectService) Update(ctx context.Context, id string, in ports.UpdateProjectInput) (*domain.Project, error) {
	p, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	setString(&p.Name, in.Name)
	setString(&p.Description, in.Description)
	setString(&p.Location, in.Location)
	setString(&p.Color, in.Color)
	setString(&p.StartDate, in.StartDate)
	setString(&p.EndDate, in.EndDate)
	setString(&p.WazeLink, in.WazeLink)
	setString(&p.GoogleMapsLink, in.GoogleMapsLink)
	if in.Status != nil {
		p.Status = *in.Status
	}
	if err := validateProject(p); err != nil {
		return nil, err
	}

	p.UpdatedAt = nowUTC()
	if err := s.projects.Update(ctx, p); err != nil {
		return nil, err
	}

	s.log.Info().Str("project_id", p.ID).Str("status", string(p.Status)).Msg("project updated")
	record(s.activity, domain.ActivityProjectUpdated, in.ActorID, p.ID, string(p.Status))
	return p, nil
}

// Delete removes the project together with its assignments.
func (s *ProjectService) Delete(ctx context.Context, id, actorID string) error {
	p, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return err
	}

	removed, err := s.assignments.DeleteByProject(ctx, id)
	if err != nil {
		return fmt.Errorf("delete project assignments: %w", err)
	}
	if err := s.projects.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("project_id", id).Int64("assignments_removed", removed).Msg("project deleted")
	metrics.AssignmentsDeletedTotal.Add(float64(removed))
	record(s.activity, domain.ActivityProjectDeleted, actorID, id, p.Name)
	return nil
}

func (s *ProjectService) Accessible(ctx context.Context, userID string, role domain.Role) ([]domain.Project, error) {
	if role == domain.RoleSupervisor || role == domain.RoleAdmin {
		return s.projects.List(ctx, ports.ListProjectsFilter{Order: ports.ProjectsByName})
	}

	assignments, err := s.assignments.List(ctx, ports.ListAssignmentsFilter{UserID: userID})
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	ids := make([]string, 0)
	for _, a := range assignments {
		if _, ok := seen[a.ProjectID]; ok {
			continue
		}
		seen[a.ProjectID] = struct{}{}
		ids = append(ids, a.ProjectID)
	}
	if len(ids) == 0 {
		return []domain.Project{}, nil
	}
	return s.projects.List(ctx, ports.ListProjectsFilter{IDs: ids, Order: ports.ProjectsByName})
}

func validateProject(p *domain.Project) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if !p.Status.Valid() {
		return fmt.Errorf("%w: status %q", domain.ErrInvalidInput, p.Status)
	}
	if p.StartDate != "" {
		if _, err := calendar.ParseDate(p.StartDate); err != nil {
			return err
		}
	}
	if p.EndDate != "" {
		if _, err := calendar.ParseDate(p.EndDate); err != nil {
			return err
		}
	}
	if p.StartDate != "" && p.EndDate != "" && p.EndDate < p.StartDate {
		return fmt.Errorf("%w: end date before start date", domain.ErrInvalidInput)
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
