package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sitecrew/workforce-scheduler/internal/core/domain"
)

// ActivityRepository persists the audit trail.
type ActivityRepository struct {
	col *mongo.Collection
	br  *Breaker
}

func NewActivityRepository(db *mongo.Database, br *Breaker) *ActivityRepository {
	return &ActivityRepository{col: db.Collection(collectionActivity), br: br}
}

// Insert persists an entry to the activity_log audit collection.
func (r *ActivityRepository) Insert(ctx context.Context, a *domain.Activity) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.br.do(func() error {
		if _, err := r.col.InsertOne(ctx, a); err != nil {
			return fmt.Errorf("insert activity: %w", err)
		}
		return nil
	})
}

func (r *ActivityRepository) ListRecent(ctx context.Context, limit int64) ([]domain.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	out := make([]domain.Activity, 0)
	err := r.br.do(func() error {
		opts := options.Find().SetSort(bson.D{{Key: "occurred_at", Value: -1}}).SetLimit(limit)
		cur, err := r.col.Find(ctx, bson.M{}, opts)
		if err != nil {
			return err
		}
		return cur.All(ctx, &out)
	})
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	return out, nil
}

// EnsureIndexes creates necessary indexes on the activity_log collection.
func (r *ActivityRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "occurred_at", Value: -1}}},
		{Keys: bson.D{{Key: "subject_id", Value: 1}}},
	})
	return err
}
