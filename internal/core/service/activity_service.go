package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/sitecrew/workforce-scheduler/internal/core/domain"
	"github.com/sitecrew/workforce-scheduler/internal/core/ports"
)

const (
	defaultActivityLimit = 50
	maxActivityLimit     = 200
)

type activityService struct {
	repo ports.ActivityRepository
	log  zerolog.Logger
}

// NewActivityService returns the audit trail service the activity
// dispatcher feeds.
func NewActivityService(repo ports.ActivityRepository, log zerolog.Logger) ports.ActivityService {
	return &activityService{repo: repo, log: log}
}

func (s *activityService) Record(ctx context.Context, a domain.Activity) error {
	if err := s.repo.Insert(ctx, &a); err != nil {
		return err
	}
	s.log.Debug().Str("kind", string(a.Kind)).Str("subject_id", a.SubjectID).Msg("activity recorded")
	return nil
}

func (s *activityService) Recent(ctx context.Context, limit int64) ([]domain.Activity, error) {
	switch {
	case limit <= 0:
		limit = defaultActivityLimit
	case limit > maxActivityLimit:
		limit = maxActivityLimit
	}
	return s.repo.ListRecent(ctx, limit)
}
