package ports

import (
	"context"

	"github.com/sitecrew/workforce-scheduler/internal/core/domain"
)

// ListAssignmentsFilter carries the query parameters for assignment reads.
// Dates are inclusive YYYY-MM-DD bounds.
type ListAssignmentsFilter struct {
	From      string // assignment_date >= From
	To        string // assignment_date <= To
	UserID    string
	ProjectID string
	Newest    bool  // sort by date desc instead of asc
	Limit     int64 // 0 = no limit
	// Expand joins the referenced user and project into each row.
	Expand bool
}

// AssignmentRepository persists assignments.
type AssignmentRepository interface {
	Create(ctx context.Context, a *domain.Assignment) error
	// CreateMany inserts all rows in one batch.
	CreateMany(ctx context.Context, as []domain.Assignment) error
	FindByID(ctx context.Context, id string) (*domain.Assignment, error)
	List(ctx context.Context, filter ListAssignmentsFilter) ([]domain.Assignment, error)
	Count(ctx context.Context, filter ListAssignmentsFilter) (int64, error)
	UpdateNotes(ctx context.Context, id, notes string) error
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) (int64, error)
	DeleteByProject(ctx context.Context, projectID string) (int64, error)
}
