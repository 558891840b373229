package ports

import (
	"context"

	"github.com/sitecrew/workforce-scheduler/internal/core/domain"
)

type CreateProjectInput struct {
	Name           string
	Description    string
	Location       string
	Status         domain.ProjectStatus // defaults to pending
	Color          string               // defaults to the first palette color
	StartDate      string
	EndDate        string
	WazeLink       string
	GoogleMapsLink string
	ActorID        string
}

// UpdateProjectInput is a partial update; nil fields are left untouched.
type UpdateProjectInput struct {
	Name           *string
	Description    *string
	Location       *string
	Status         *domain.ProjectStatus
	Color          *string
	StartDate      *string
	EndDate        *string
	WazeLink       *string
	GoogleMapsLink *string
	ActorID        string
}

type ProjectService interface {
	List(ctx context.Context, filter ListProjectsFilter) ([]domain.Project, error)
	Get(ctx context.Context, id string) (*domain.Project, error)
	Create(ctx context.Context, in CreateProjectInput) (*domain.Project, error)
	Update(ctx context.Context, id string, in UpdateProjectInput) (*domain.Project, error)
	Delete(ctx context.Context, id, actorID string) error
	// Accessible lists the projects a user may browse: every project for
	// supervisors and admins, only the ones they were assigned to for workers.
	Accessible(ctx context.Context, userID string, role domain.Role) ([]domain.Project, error)
}
