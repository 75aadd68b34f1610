package job

import (
	"time"

	"hirepulse/internal/common"
)

type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
	StatusDraft  Status = "draft"
)

func IsKnownStatus(status Status) bool {
	switch status {
	case StatusOpen, StatusClosed, StatusDraft:
		return true
	default:
		return false
	}
}

// Job is a posting owned by exactly one recruiter. The counters are mutated
// only by the application/interview lifecycle, never by a client write.
type Job struct {
	ID                     common.ID `json:"id" bson:"_id"`
	Title                  string    `json:"title" bson:"title"`
	Description            string    `json:"description" bson:"description"`
	Requirements           []string  `json:"requirements" bson:"requirements"`
	Status                 Status    `json:"status" bson:"status"`
	RecruiterID            common.ID `json:"recruiter_id" bson:"recruiter_id"`
	AIGeneratedDescription string    `json:"ai_generated_description,omitempty" bson:"ai_generated_description,omitempty"`
	TotalApplications      int       `json:"total_applications" bson:"total_applications"`
	TotalInterviews        int       `json:"total_interviews" bson:"total_interviews"`
	CreatedAt              time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt              time.Time `json:"updated_at" bson:"updated_at"`
}

// Search carries the listing filters. Page is 1-based.
type Search struct {
	Query       string
	Status      Status
	RecruiterID common.ID
	Page        int
	Limit       int
}
