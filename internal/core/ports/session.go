package ports

import (
	"context"
	"time"

	"github.com/sitecrew/workforce-scheduler/internal/core/domain"
)

// SessionStore keeps signed-in sessions so they can be revoked before their
// token expires.
type SessionStore interface {
	Save(ctx context.Context, s domain.Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]domain.Session, error)
	DeleteByUser(ctx context.Context, userID string) error
}

// GenerationStore issues monotonically increasing tokens per scope.
type GenerationStore interface {
	Next(ctx context.Context, scope string) (uint64, error)
}
