package ports

import (
	"context"
	"time"

	"github.com/sitecrew/workforce-scheduler/internal/core/domain"
)

// UpdateUserInput is a partial update; nil fields are left untouched.
type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	Role      *domain.Role
	Status    *domain.PresenceStatus
	ActorID   string
}

// AvailableUsersInput drives the available-users panel of the admin calendar.
type AvailableUsersInput struct {
	Search string
	Role   string // "all" or empty disables
	Status string // defaults to "present"; "all" disables
	// Date is required when ExcludeAssigned is set.
	Date            time.Time
	ExcludeAssigned bool
}

type UserService interface {
	List(ctx context.Context, filter ListUsersFilter) ([]domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error)
	TogglePresence(ctx context.Context, id, actorID string) (*domain.User, error)
	Delete(ctx context.Context, id, actorID string) error
	Available(ctx context.Context, in AvailableUsersInput) ([]domain.User, error)
}
