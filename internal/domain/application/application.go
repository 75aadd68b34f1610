package application

import (
	"time"

	"hirepulse/internal/common"
)

type Status string

const (
	StatusPending            Status = "pending"
	StatusReviewed           Status = "reviewed"
	StatusInterviewScheduled Status = "interview_scheduled"
	StatusAccepted           Status = "accepted"
	StatusRejected           Status = "rejected"
)

func IsKnownStatus(status Status) bool {
	switch status {
	case StatusPending, StatusReviewed, StatusInterviewScheduled, StatusAccepted, StatusRejected:
		return true
	default:
		return false
	}
}

func IsTerminal(status Status) bool {
	return status == StatusAccepted || status == StatusRejected
}

// AllowedTransition encodes the lifecycle: pending -> reviewed ->
// interview_scheduled, reviewed -> accepted|rejected, and any non-terminal
// state may move straight to rejected.
func AllowedTransition(from, to Status) bool {
	if IsTerminal(from) {
		return false
	}
	if to == StatusRejected {
		return true
	}
	switch from {
	case StatusPending:
		return to == StatusReviewed
	case StatusReviewed:
		return to == StatusInterviewScheduled || to == StatusAccepted
	case StatusInterviewScheduled:
		return to == StatusAccepted
	default:
		return false
	}
}

// Application links one candidate to one job; at most one per pair. The match
// score is computed before the insert, so an application is never visible
// without it.
type Application struct {
	ID           common.ID `json:"id" bson:"_id"`
	JobID        common.ID `json:"job_id" bson:"job_id"`
	CandidateID  common.ID `json:"candidate_id" bson:"candidate_id"`
	CoverLetter  string    `json:"cover_letter,omitempty" bson:"cover_letter,omitempty"`
	Status       Status    `json:"status" bson:"status"`
	MatchScore   float64   `json:"match_score" bson:"match_score"`
	MatchSummary string    `json:"match_summary" bson:"match_summary"`
	MatchMethod  string    `json:"match_method" bson:"match_method"`
	Feedback     string    `json:"feedback,omitempty" bson:"feedback,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}
