package interview

import (
	"context"

	"hirepulse/internal/common"
)

type Repository interface {
	Create(ctx context.Context, item Interview) (*Interview, error)
	GetByID(ctx context.Context, id common.ID) (*Interview, error)
	ListByCandidate(ctx context.Context, candidateID common.ID) ([]Interview, error)
	ListByRecruiter(ctx context.Context, recruiterID common.ID, status Status) ([]Interview, error)
	UpdateStatus(ctx context.Context, id common.ID, status Status) (*Interview, error)
	SaveSubmission(ctx context.Context, id common.ID, answers map[string]string, score float64, status Status) (*Interview, error)
	SaveFeedback(ctx context.Context, id common.ID, score *float64, feedback string) (*Interview, error)
}
