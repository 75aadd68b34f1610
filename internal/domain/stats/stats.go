// Package stats holds the aggregate counters behind the admin dashboard.
package stats

import "context"

type System struct {
	TotalUsers           int64            `json:"total_users"`
	TotalJobs            int64            `json:"total_jobs"`
	TotalApplications    int64            `json:"total_applications"`
	TotalInterviews      int64            `json:"total_interviews"`
	ActiveRecruiters     int64            `json:"active_recruiters"`
	ActiveCandidates     int64            `json:"active_candidates"`
	JobsByStatus         map[string]int64 `json:"jobs_by_status"`
	ApplicationsByStatus map[string]int64 `json:"applications_by_status"`
	InterviewsByStatus   map[string]int64 `json:"interviews_by_status"`
}

type Repository interface {
	Collect(ctx context.Context) (*System, error)
}
