package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hirepulse/internal/common"
	"hirepulse/internal/domain/interview"
)

type InterviewRepository struct {
	col *mongo.Collection
}

func NewInterviewRepository(db *mongo.Database) *InterviewRepository {
	return &InterviewRepository{col: db.Collection("interviews")}
}

func (r *InterviewRepository) Create(ctx context.Context, item interview.Interview) (*interview.Interview, error) {
	item.ID = common.NewID()
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now
	if item.Status == "" {
		item.Status = interview.StatusPending
	}
	if item.Answers == nil {
		item.Answers = map[string]string{}
	}
	if _, err := r.col.InsertOne(ctx, item); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create interview", err)
	}
	return &item, nil
}

func (r *InterviewRepository) GetByID(ctx context.Context, id common.ID) (*interview.Interview, error) {
	var item interview.Interview
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.NewError(common.CodeNotFound, "interview not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load interview", err)
	}
	return &item, nil
}

func (r *InterviewRepository) ListByCandidate(ctx context.Context, candidateID common.ID) ([]interview.Interview, error) {
	cursor, err := r.col.Find(ctx, bson.M{"candidate_id": candidateID}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list interviews", err)
	}
	defer cursor.Close(ctx)
	var items []interview.Interview
	if err := cursor.All(ctx, &items); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to decode interviews", err)
	}
	return items, nil
}

func (r *InterviewRepository) ListByRecruiter(ctx context.Context, recruiterID common.ID, status interview.Status) ([]interview.Interview, error) {
	query := bson.M{"recruiter_id": recruiterID}
	if status != "" {
		query["status"] = status
	}
	cursor, err := r.col.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list interviews", err)
	}
	defer cursor.Close(ctx)
	var items []interview.Interview
	if err := cursor.All(ctx, &items); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to decode interviews", err)
	}
	return items, nil
}

func (r *InterviewRepository) UpdateStatus(ctx context.Context, id common.ID, status interview.Status) (*interview.Interview, error) {
	result, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}})
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update interview", err)
	}
	if result.MatchedCount == 0 {
		return nil, common.NewError(common.CodeNotFound, "interview not found", nil)
	}
	return r.GetByID(ctx, id)
}

// SaveSubmission writes answers, score, and the terminal status in one update
// so a submission is never half-applied.
func (r *InterviewRepository) SaveSubmission(ctx context.Context, id common.ID, answers map[string]string, score float64, status interview.Status) (*interview.Interview, error) {
	update := bson.M{
		"answers":    answers,
		"score":      score,
		"status":     status,
		"updated_at": time.Now().UTC(),
	}
	result, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to save submission", err)
	}
	if result.MatchedCount == 0 {
		return nil, common.NewError(common.CodeNotFound, "interview not found", nil)
	}
	return r.GetByID(ctx, id)
}

func (r *InterviewRepository) SaveFeedback(ctx context.Context, id common.ID, score *float64, feedback string) (*interview.Interview, error) {
	update := bson.M{"feedback": feedback, "updated_at": time.Now().UTC()}
	if score != nil {
		update["score"] = *score
	}
	result, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to save feedback", err)
	}
	if result.MatchedCount == 0 {
		return nil, common.NewError(common.CodeNotFound, "interview not found", nil)
	}
	return r.GetByID(ctx, id)
}
