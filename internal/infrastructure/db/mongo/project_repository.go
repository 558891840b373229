package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sitecrew/workforce-scheduler/internal/core/domain"
	"github.com/sitecrew/workforce-scheduler/internal/core/ports"
)

type ProjectRepository struct {
	col *mongo.Collection
	br  *Breaker
}

func NewProjectRepository(db *mongo.Database, br *Breaker) *ProjectRepository {
	return &ProjectRepository{col: db.Collection(collectionProjects), br: br}
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.br.do(func() error {
		if _, err := r.col.InsertOne(ctx, p); err != nil {
			return fmt.Errorf("insert project: %w", err)
		}
		return nil
	})
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Project
	err := r.br.do(func() error {
		return r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	return &p, nil
}

func (r *ProjectRepository) List(ctx context.Context, f ports.ListProjectsFilter) ([]domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	sort := bson.D{{Key: "created_at", Value: -1}}
	if f.Order == ports.ProjectsByName {
		sort = bson.D{{Key: "name", Value: 1}}
	}

	projects := make([]domain.Project, 0)
	err := r.br.do(func() error {
		cur, err := r.col.Find(ctx, projectFilter(f), options.Find().SetSort(sort))
		if err != nil {
			return err
		}
		return cur.All(ctx, &projects)
	})
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

func (r *ProjectRepository) Count(ctx context.Context, f ports.ListProjectsFilter) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var n int64
	err := r.br.do(func() (err error) {
		n, err = r.col.CountDocuments(ctx, projectFilter(f))
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	return n, nil
}

func (r *ProjectRepository) Update(ctx context.Context, p *domain.Project) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.br.do(func() error {
		res, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
		if err != nil {
			return fmt.Errorf("update project: %w", err)
		}
		if res.MatchedCount == 0 {
			return domain.ErrProjectNotFound
		}
		return nil
	})
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.br.do(func() error {
		res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			return fmt.Errorf("delete project: %w", err)
		}
		if res.DeletedCount == 0 {
			return domain.ErrProjectNotFound
		}
		return nil
	})
}

// EnsureIndexes creates necessary indexes on the projects collection.
func (r *ProjectRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func projectFilter(f ports.ListProjectsFilter) bson.M {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.IDs != nil {
		filter["_id"] = bson.M{"$in": f.IDs}
	}
	return filter
}
