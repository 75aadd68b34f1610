package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hirepulse/internal/common"
	"hirepulse/internal/domain/application"
)

type ApplicationRepository struct {
	col *mongo.Collection
}

func NewApplicationRepository(db *mongo.Database) *ApplicationRepository {
	col := db.Collection("applications")
	// The compound unique index is the real duplicate-application guard; the
	// service-level lookup only exists for a friendlier error message.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, _ = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "job_id", Value: 1}, {Key: "candidate_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return &ApplicationRepository{col: col}
}

func (r *ApplicationRepository) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	app.ID = common.NewID()
	now := time.Now().UTC()
	app.CreatedAt = now
	app.UpdatedAt = now
	if app.Status == "" {
		app.Status = application.StatusPending
	}
	if _, err := r.col.InsertOne(ctx, app); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, common.NewError(common.CodeConflict, "already applied for this job", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create application", err)
	}
	return &app, nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id common.ID) (*application.Application, error) {
	var app application.Application
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&app); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load application", err)
	}
	return &app, nil
}

func (r *ApplicationRepository) FindByJobAndCandidate(ctx context.Context, jobID, candidateID common.ID) (*application.Application, error) {
	var app application.Application
	err := r.col.FindOne(ctx, bson.M{"job_id": jobID, "candidate_id": candidateID}).Decode(&app)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load application", err)
	}
	return &app, nil
}

func (r *ApplicationRepository) ListByCandidate(ctx context.Context, candidateID common.ID) ([]application.Application, error) {
	cursor, err := r.col.Find(ctx, bson.M{"candidate_id": candidateID}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applications", err)
	}
	defer cursor.Close(ctx)
	var items []application.Application
	if err := cursor.All(ctx, &items); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to decode applications", err)
	}
	return items, nil
}

func (r *ApplicationRepository) ListByJobs(ctx context.Context, jobIDs []common.ID, status application.Status) ([]application.Application, error) {
	if len(jobIDs) == 0 {
		return nil, nil
	}
	query := bson.M{"job_id": bson.M{"$in": jobIDs}}
	if status != "" {
		query["status"] = status
	}
	cursor, err := r.col.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applications", err)
	}
	defer cursor.Close(ctx)
	var items []application.Application
	if err := cursor.All(ctx, &items); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to decode applications", err)
	}
	return items, nil
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id common.ID, status application.Status, feedback string) (*application.Application, error) {
	update := bson.M{"status": status, "updated_at": time.Now().UTC()}
	if feedback != "" {
		update["feedback"] = feedback
	}
	result, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update application", err)
	}
	if result.MatchedCount == 0 {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	return r.GetByID(ctx, id)
}
