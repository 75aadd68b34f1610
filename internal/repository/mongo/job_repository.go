package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hirepulse/internal/common"
	"hirepulse/internal/domain/job"
)

type JobRepository struct {
	col *mongo.Collection
}

func NewJobRepository(db *mongo.Database) *JobRepository {
	return &JobRepository{col: db.Collection("jobs")}
}

func (r *JobRepository) Create(ctx context.Context, posting job.Job) (*job.Job, error) {
	posting.ID = common.NewID()
	now := time.Now().UTC()
	posting.CreatedAt = now
	posting.UpdatedAt = now
	if posting.Status == "" {
		posting.Status = job.StatusOpen
	}
	if _, err := r.col.InsertOne(ctx, posting); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create job", err)
	}
	return &posting, nil
}

func (r *JobRepository) GetByID(ctx context.Context, id common.ID) (*job.Job, error) {
	var posting job.Job
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&posting); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.NewError(common.CodeNotFound, "job not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load job", err)
	}
	return &posting, nil
}

func (r *JobRepository) Search(ctx context.Context, search job.Search) ([]job.Job, error) {
	query := bson.M{}
	if search.Query != "" {
		pattern := primitive.Regex{Pattern: search.Query, Options: "i"}
		query["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"description": pattern},
		}
	}
	if search.Status != "" {
		query["status"] = search.Status
	}
	if search.RecruiterID != "" {
		query["recruiter_id"] = search.RecruiterID
	}
	page := search.Page
	if page < 1 {
		page = 1
	}
	limit := search.Limit
	if limit <= 0 {
		limit = 10
	}
	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to search jobs", err)
	}
	defer cursor.Close(ctx)
	var items []job.Job
	if err := cursor.All(ctx, &items); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to decode jobs", err)
	}
	return items, nil
}

func (r *JobRepository) ListByRecruiter(ctx context.Context, recruiterID common.ID) ([]job.Job, error) {
	cursor, err := r.col.Find(ctx, bson.M{"recruiter_id": recruiterID})
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list jobs", err)
	}
	defer cursor.Close(ctx)
	var items []job.Job
	if err := cursor.All(ctx, &items); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to decode jobs", err)
	}
	return items, nil
}

func (r *JobRepository) Update(ctx context.Context, id common.ID, fields map[string]any) (*job.Job, error) {
	fields["updated_at"] = time.Now().UTC()
	result, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update job", err)
	}
	if result.MatchedCount == 0 {
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	return r.GetByID(ctx, id)
}

func (r *JobRepository) Delete(ctx context.Context, id common.ID) error {
	result, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete job", err)
	}
	if result.DeletedCount == 0 {
		return common.NewError(common.CodeNotFound, "job not found", nil)
	}
	return nil
}

// IncrementCounter bumps a display counter on the job document. A single
// update is atomic per document; the counter is informational and may
// under-count after a crash between the lifecycle insert and this call.
func (r *JobRepository) IncrementCounter(ctx context.Context, id common.ID, field string) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{field: 1}})
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to increment job counter", err)
	}
	return nil
}
