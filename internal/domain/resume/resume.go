package resume

import (
	"context"
	"time"

	"hirepulse/internal/common"
)

// Record is the extracted plain text of the candidate's most recent upload.
// One per candidate, overwritten wholesale on re-upload.
type Record struct {
	CandidateID common.ID `json:"candidate_id" bson:"candidate_id"`
	Text        string    `json:"resume_text" bson:"resume_text"`
	FileURL     string    `json:"file_url,omitempty" bson:"file_url,omitempty"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

type Repository interface {
	Upsert(ctx context.Context, record Record) error
	GetByCandidate(ctx context.Context, candidateID common.ID) (*Record, error)
}
