package interview

import (
	"time"

	"hirepulse/internal/common"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func IsTerminal(status Status) bool {
	return status == StatusCompleted || status == StatusCancelled
}

func AllowedTransition(from, to Status) bool {
	if IsTerminal(from) {
		return false
	}
	switch from {
	case StatusPending:
		return to == StatusInProgress || to == StatusCancelled
	case StatusInProgress:
		return to == StatusCompleted || to == StatusCancelled
	default:
		return false
	}
}

type Question struct {
	ID            common.ID `json:"id" bson:"_id"`
	Text          string    `json:"text" bson:"text"`
	Options       []string  `json:"options" bson:"options"`
	CorrectAnswer string    `json:"correct_answer" bson:"correct_answer"`
}

// Interview is created only as a side effect of an application reaching
// interview_scheduled. Answers map question ID to the chosen option.
type Interview struct {
	ID          common.ID         `json:"id" bson:"_id"`
	JobID       common.ID         `json:"job_id" bson:"job_id"`
	CandidateID common.ID         `json:"candidate_id" bson:"candidate_id"`
	RecruiterID common.ID         `json:"recruiter_id" bson:"recruiter_id"`
	Status      Status            `json:"status" bson:"status"`
	ScheduledAt *time.Time        `json:"scheduled_at,omitempty" bson:"scheduled_at,omitempty"`
	Questions   []Question        `json:"questions" bson:"questions"`
	Answers     map[string]string `json:"answers" bson:"answers"`
	Score       *float64          `json:"score,omitempty" bson:"score,omitempty"`
	Feedback    string            `json:"feedback,omitempty" bson:"feedback,omitempty"`
	CreatedAt   time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at" bson:"updated_at"`
}
