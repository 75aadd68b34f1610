package application

import (
	"context"

	"hirepulse/internal/common"
)

type Repository interface {
	Create(ctx context.Context, app Application) (*Application, error)
	GetByID(ctx context.Context, id common.ID) (*Application, error)
	FindByJobAndCandidate(ctx context.Context, jobID, candidateID common.ID) (*Application, error)
	ListByCandidate(ctx context.Context, candidateID common.ID) ([]Application, error)
	ListByJobs(ctx context.Context, jobIDs []common.ID, status Status) ([]Application, error)
	UpdateStatus(ctx context.Context, id common.ID, status Status, feedback string) (*Application, error)
}
