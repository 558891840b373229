package ports

import (
	"context"

	"github.com/sitecrew/workforce-scheduler/internal/core/domain"
)

// UserOrder selects the sort applied by UserRepository.List.
type UserOrder int

const (
	UsersNewestFirst UserOrder = iota // created_at desc
	UsersByFirstName                  // first_name asc
)

// ListUsersFilter narrows user queries. Zero values mean no filter.
type ListUsersFilter struct {
	// Search matches a case-insensitive substring of first name, last name
	// or email. Empty matches everyone.
	Search string
	Role   domain.Role
	Status domain.PresenceStatus
	Order  UserOrder
}

// UserRepository persists employee accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, filter ListUsersFilter) ([]domain.User, error)
	Count(ctx context.Context, filter ListUsersFilter) (int64, error)
	// Update replaces the mutable profile fields (names, role, status).
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
}
