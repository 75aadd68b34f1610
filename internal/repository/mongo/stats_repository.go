package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"hirepulse/internal/common"
	"hirepulse/internal/domain/stats"
	"hirepulse/internal/domain/user"
)

// StatsRepository answers the admin dashboard with count queries and a
// group-by-status aggregation per collection.
type StatsRepository struct {
	db *mongo.Database
}

func NewStatsRepository(db *mongo.Database) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) Collect(ctx context.Context) (*stats.System, error) {
	system := &stats.System{}
	var err error

	if system.TotalUsers, err = r.db.Collection("users").CountDocuments(ctx, bson.M{}); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to count users", err)
	}
	if system.TotalJobs, err = r.db.Collection("jobs").CountDocuments(ctx, bson.M{}); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to count jobs", err)
	}
	if system.TotalApplications, err = r.db.Collection("applications").CountDocuments(ctx, bson.M{}); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to count applications", err)
	}
	if system.TotalInterviews, err = r.db.Collection("interviews").CountDocuments(ctx, bson.M{}); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to count interviews", err)
	}
	if system.ActiveRecruiters, err = r.db.Collection("users").CountDocuments(ctx, bson.M{"role": user.RoleRecruiter, "is_active": true}); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to count recruiters", err)
	}
	if system.ActiveCandidates, err = r.db.Collection("users").CountDocuments(ctx, bson.M{"role": user.RoleCandidate, "is_active": true}); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to count candidates", err)
	}

	if system.JobsByStatus, err = r.countByStatus(ctx, "jobs"); err != nil {
		return nil, err
	}
	if system.ApplicationsByStatus, err = r.countByStatus(ctx, "applications"); err != nil {
		return nil, err
	}
	if system.InterviewsByStatus, err = r.countByStatus(ctx, "interviews"); err != nil {
		return nil, err
	}
	return system, nil
}

func (r *StatsRepository) countByStatus(ctx context.Context, collection string) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}
	cursor, err := r.db.Collection(collection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to aggregate "+collection, err)
	}
	defer cursor.Close(ctx)

	counts := map[string]int64{}
	for cursor.Next(ctx) {
		var row struct {
			Status string `bson:"_id"`
			Count  int64  `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to decode aggregation row", err)
		}
		counts[row.Status] = row.Count
	}
	return counts, nil
}
