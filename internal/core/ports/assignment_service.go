package ports

import (
	"context"

	"github.com/sitecrew/workforce-scheduler/internal/core/domain"
)

// CreateAssignmentInput is the single-assignment flow. It is rejected when
// the user already has any assignment on Date.
type CreateAssignmentInput struct {
	UserID    string
	ProjectID string
	Date      string
	Notes     string
	ActorID   string
}

// BatchAssignmentInput schedules several users on one project for one day.
// Same-day assignments on other projects are allowed.
type BatchAssignmentInput struct {
	ProjectID string
	Date      string
	UserIDs   []string
	Notes     string
	ActorID   string
}

// MoveTarget is where a dragged user was dropped.
type MoveTarget struct {
	ProjectID string
	Date      string
}

// MoveResult reports what MoveUserToProject did. Created is false when the
// user was already on that project that day.
type MoveResult struct {
	Created    bool
	Assignment *domain.Assignment
	Message    string
}

type AssignmentService interface {
	Create(ctx context.Context, in CreateAssignmentInput) (*domain.Assignment, error)
	CreateBatch(ctx context.Context, in BatchAssignmentInput) ([]domain.Assignment, error)
	MoveUserToProject(ctx context.Context, userID string, target MoveTarget, actorID string) (*MoveResult, error)
	UpdateNotes(ctx context.Context, id, notes, actorID string) (*domain.Assignment, error)
	Delete(ctx context.Context, id, actorID string) error
}
