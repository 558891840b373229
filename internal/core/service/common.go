package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sitecrew/workforce-scheduler/internal/core/domain"
	"github.com/sitecrew/workforce-scheduler/internal/core/ports"
)

// SessionManager abstracts the session lifecycle (see package session).
type SessionManager interface {
	Open(ctx context.Context, user domain.User) (domain.Session, error)
	Lookup(ctx context.Context, id string) (*domain.Session, error)
	Close(ctx context.Context, id string) error
	Refresh(ctx context.Context, user domain.User) error
	Revoke(ctx context.Context, userID string) error
}

func nowUTC() time.Time {
	return time.Now().UTC()
}

// record pushes an audit entry onto q. A nil queue disables auditing.
func record(q ports.ActivityQueue, kind domain.ActivityKind, actorID, subjectID, details string) {
	if q == nil {
		return
	}
	q.Enqueue(newActivity(kind, actorID, subjectID, details))
}

func recordBatch(q ports.ActivityQueue, entries []domain.Activity) {
	if q == nil || len(entries) == 0 {
		return
	}
	q.EnqueueBatch(entries)
}

func newActivity(kind domain.ActivityKind, actorID, subjectID, details string) domain.Activity {
	return domain.Activity{
		ID:         uuid.NewString(),
		Kind:       kind,
		ActorID:    actorID,
		SubjectID:  subjectID,
		Details:    details,
		OccurredAt: nowUTC(),
	}
}
