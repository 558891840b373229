package ports

import (
	"context"

	"github.com/sitecrew/workforce-scheduler/internal/core/domain"
)

// ActivityRepository stores the audit trail.
type ActivityRepository interface {
	Insert(ctx context.Context, a *domain.Activity) error
	ListRecent(ctx context.Context, limit int64) ([]domain.Activity, error)
}

// ActivityQueue accepts audit entries for asynchronous persistence.
// Neither call blocks the caller.
type ActivityQueue interface {
	Enqueue(a domain.Activity)
	EnqueueBatch(entries []domain.Activity)
}

type ActivityService interface {
	Record(ctx context.Context, a domain.Activity) error
	Recent(ctx context.Context, limit int64) ([]domain.Activity, error)
}
