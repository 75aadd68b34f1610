package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hirepulse/internal/common"
	"hirepulse/internal/domain/resume"
)

type ResumeRepository struct {
	col *mongo.Collection
}

func NewResumeRepository(db *mongo.Database) *ResumeRepository {
	col := db.Collection("resumes")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, _ = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "candidate_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return &ResumeRepository{col: col}
}

// Upsert overwrites the candidate's record wholesale; there is no versioning.
func (r *ResumeRepository) Upsert(ctx context.Context, record resume.Record) error {
	record.UpdatedAt = time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"resume_text": record.Text,
		"file_url":    record.FileURL,
		"updated_at":  record.UpdatedAt,
	}}
	_, err := r.col.UpdateOne(ctx, bson.M{"candidate_id": record.CandidateID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to save resume", err)
	}
	return nil
}

func (r *ResumeRepository) GetByCandidate(ctx context.Context, candidateID common.ID) (*resume.Record, error) {
	var record resume.Record
	if err := r.col.FindOne(ctx, bson.M{"candidate_id": candidateID}).Decode(&record); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.NewError(common.CodeNotFound, "resume not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load resume", err)
	}
	return &record, nil
}
