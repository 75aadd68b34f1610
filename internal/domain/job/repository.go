package job

import (
	"context"

	"hirepulse/internal/common"
)

type Repository interface {
	Create(ctx context.Context, posting Job) (*Job, error)
	GetByID(ctx context.Context, id common.ID) (*Job, error)
	Search(ctx context.Context, search Search) ([]Job, error)
	ListByRecruiter(ctx context.Context, recruiterID common.ID) ([]Job, error)
	Update(ctx context.Context, id common.ID, fields map[string]any) (*Job, error)
	Delete(ctx context.Context, id common.ID) error
	IncrementCounter(ctx context.Context, id common.ID, field string) error
}
