package ports

import (
	"context"

	"github.com/sitecrew/workforce-scheduler/internal/core/domain"
)

type ProjectOrder int

const (
	ProjectsNewestFirst ProjectOrder = iota // created_at desc
	ProjectsByName                          // name asc
)

// ListProjectsFilter narrows project queries. A nil IDs slice means no id
// filter; an empty non-nil slice matches nothing.
type ListProjectsFilter struct {
	Status domain.ProjectStatus
	IDs    []string
	Order  ProjectOrder
}

type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) error
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, filter ListProjectsFilter) ([]domain.Project, error)
	Count(ctx context.Context, filter ListProjectsFilter) (int64, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}
