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

type AssignmentRepository struct {
	col *mongo.Collection
	br  *Breaker
}

func NewAssignmentRepository(db *mongo.Database, br *Breaker) *AssignmentRepository {
	return &AssignmentRepository{col: db.Collection(collectionAssignments), br: br}
}

func (r *AssignmentRepository) Create(ctx context.Context, a *domain.Assignment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	bare := a.Bare()
	return r.br.do(func() error {
		if _, err := r.col.InsertOne(ctx, &bare); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return domain.ErrAlreadyAssigned
			}
			return fmt.Errorf("insert assignment: %w", err)
		}
		return nil
	})
}

// CreateMany inserts the batch in order. Rows before a failing one may
// already be stored.
func (r *AssignmentRepository) CreateMany(ctx context.Context, as []domain.Assignment) error {
	if len(as) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	docs := make([]interface{}, 0, len(as))
	for _, a := range as {
		docs = append(docs, a.Bare())
	}
	return r.br.do(func() error {
		if _, err := r.col.InsertMany(ctx, docs); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return domain.ErrAlreadyAssigned
			}
			return fmt.Errorf("insert assignments: %w", err)
		}
		return nil
	})
}

func (r *AssignmentRepository) FindByID(ctx context.Context, id string) (*domain.Assignment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var a domain.Assignment
	err := r.br.do(func() error {
		return r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("find assignment: %w", err)
	}
	return &a, nil
}

// List returns matching assignments ordered by date. With f.Expand the
// referenced user (without password hash) and project are joined in.
func (r *AssignmentRepository) List(ctx context.Context, f ports.ListAssignmentsFilter) ([]domain.Assignment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	dir := 1
	if f.Newest {
		dir = -1
	}
	sort := bson.D{{Key: "assignment_date", Value: dir}, {Key: "created_at", Value: 1}}

	out := make([]domain.Assignment, 0)
	err := r.br.do(func() error {
		var (
			cur *mongo.Cursor
			err error
		)
		if f.Expand {
			cur, err = r.col.Aggregate(ctx, expandPipeline(assignmentFilter(f), sort, f.Limit))
		} else {
			opts := options.Find().SetSort(sort)
			if f.Limit > 0 {
				opts.SetLimit(f.Limit)
			}
			cur, err = r.col.Find(ctx, assignmentFilter(f), opts)
		}
		if err != nil {
			return err
		}
		return cur.All(ctx, &out)
	})
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return out, nil
}

func (r *AssignmentRepository) Count(ctx context.Context, f ports.ListAssignmentsFilter) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var n int64
	err := r.br.do(func() (err error) {
		n, err = r.col.CountDocuments(ctx, assignmentFilter(f))
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("count assignments: %w", err)
	}
	return n, nil
}

func (r *AssignmentRepository) UpdateNotes(ctx context.Context, id, notes string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.br.do(func() error {
		res, err := r.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{"notes": notes}})
		if err != nil {
			return fmt.Errorf("update assignment: %w", err)
		}
		if res.MatchedCount == 0 {
			return domain.ErrAssignmentNotFound
		}
		return nil
	})
}

func (r *AssignmentRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.br.do(func() error {
		res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			return fmt.Errorf("delete assignment: %w", err)
		}
		if res.DeletedCount == 0 {
			return domain.ErrAssignmentNotFound
		}
		return nil
	})
}

func (r *AssignmentRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	return r.deleteMany(ctx, bson.M{"user_id": userID})
}

func (r *AssignmentRepository) DeleteByProject(ctx context.Context, projectID string) (int64, error) {
	return r.deleteMany(ctx, bson.M{"project_id": projectID})
}

func (r *AssignmentRepository) deleteMany(ctx context.Context, filter bson.M) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var n int64
	err := r.br.do(func() error {
		res, err := r.col.DeleteMany(ctx, filter)
		if err != nil {
			return err
		}
		n = res.DeletedCount
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("delete assignments: %w", err)
	}
	return n, nil
}

// EnsureIndexes creates necessary indexes on the assignments collection.
func (r *AssignmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "assignment_date", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "assignment_date", Value: 1}}},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "assignment_date", Value: 1}, {Key: "project_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "project_id", Value: 1}, {Key: "assignment_date", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func assignmentFilter(f ports.ListAssignmentsFilter) bson.M {
	filter := bson.M{}
	date := bson.M{}
	if f.From != "" {
		date["$gte"] = f.From
	}
	if f.To != "" {
		date["$lte"] = f.To
	}
	if len(date) > 0 {
		filter["assignment_date"] = date
	}
	if f.UserID != "" {
		filter["user_id"] = f.UserID
	}
	if f.ProjectID != "" {
		filter["project_id"] = f.ProjectID
	}
	return filter
}

// expandPipeline matches, sorts and limits before joining so the lookups
// only run for rows that are returned.
func expandPipeline(match bson.M, sort bson.D, limit int64) mongo.Pipeline {
	p := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: sort}},
	}
	if limit > 0 {
		p = append(p, bson.D{{Key: "$limit", Value: limit}})
	}
	return append(p,
		lookupOne(collectionUsers, "user_id", "user"),
		unwindOptional("$user"),
		lookupOne(collectionProjects, "project_id", "project"),
		unwindOptional("$project"),
		bson.D{{Key: "$project", Value: bson.D{{Key: "user.password_hash", Value: 0}}}},
	)
}

func lookupOne(from, localField, as string) bson.D {
	return bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: from},
		{Key: "localField", Value: localField},
		{Key: "foreignField", Value: "_id"},
		{Key: "as", Value: as},
	}}}
}

func unwindOptional(path string) bson.D {
	return bson.D{{Key: "$unwind", Value: bson.D{
		{Key: "path", Value: path},
		{Key: "preserveNullAndEmptyArrays", Value: true},
	}}}
}
