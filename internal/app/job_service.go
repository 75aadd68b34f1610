package app

import (
	"context"
	"fmt"
	"strings"

	"hirepulse/internal/ai"
	"hirepulse/internal/common"
	"hirepulse/internal/domain/job"
	"hirepulse/internal/domain/user"
)

type JobService struct {
	jobs    job.Repository
	gateway *ai.Gateway
	logger  Logger
}

func NewJobService(jobs job.Repository, gateway *ai.Gateway, logger Logger) *JobService {
	return &JobService{jobs: jobs, gateway: gateway, logger: logger}
}

func (s *JobService) Create(ctx context.Context, recruiter *user.User, posting job.Job) (*job.Job, error) {
	if strings.TrimSpace(posting.Title) == "" {
		return nil, common.NewValidationError("invalid request", map[string]string{"title": "title is required"})
	}
	if posting.Status != "" && !job.IsKnownStatus(posting.Status) {
		return nil, common.NewValidationError("invalid request", map[string]string{"status": "status must be open, closed, or draft"})
	}
	posting.RecruiterID = recruiter.ID
	// Description generation is best effort: unavailable backends must not
	// fail the write.
	posting.AIGeneratedDescription = s.generateDescription(ctx, posting.Title, posting.Requirements)
	created, err := s.jobs.Create(ctx, posting)
	if err != nil {
		return nil, err
	}
	s.logger.Info(fmt.Sprintf("job created job_id=%s recruiter_id=%s", created.ID, recruiter.ID))
	return created, nil
}

// Get applies per-role visibility: candidates see only open jobs, recruiters
// only their own, admins everything.
func (s *JobService) Get(ctx context.Context, principal *user.User, id common.ID) (*job.Job, error) {
	posting, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	switch principal.Role {
	case user.RoleCandidate:
		if posting.Status != job.StatusOpen {
			return nil, common.NewError(common.CodeNotFound, "job not found", nil)
		}
	case user.RoleRecruiter:
		if posting.RecruiterID != principal.ID {
			return nil, common.NewError(common.CodeForbidden, "job belongs to another recruiter", nil)
		}
	}
	return posting, nil
}

func (s *JobService) List(ctx context.Context, principal *user.User, search job.Search) ([]job.Job, error) {
	switch principal.Role {
	case user.RoleCandidate:
		search.Status = job.StatusOpen
		search.RecruiterID = ""
	case user.RoleRecruiter:
		search.RecruiterID = principal.ID
	}
	return s.jobs.Search(ctx, search)
}

type JobUpdate struct {
	Title        *string
	Description  *string
	Requirements []string
	Status       *job.Status
}

func (s *JobService) Update(ctx context.Context, recruiter *user.User, id common.ID, update JobUpdate) (*job.Job, error) {
	posting, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if posting.RecruiterID != recruiter.ID {
		return nil, common.NewError(common.CodeForbidden, "job belongs to another recruiter", nil)
	}

	fields := map[string]any{}
	title := posting.Title
	requirements := posting.Requirements
	regenerate := false
	if update.Title != nil && strings.TrimSpace(*update.Title) != "" {
		title = strings.TrimSpace(*update.Title)
		fields["title"] = title
		regenerate = true
	}
	if update.Description != nil {
		fields["description"] = *update.Description
	}
	if update.Requirements != nil {
		requirements = update.Requirements
		fields["requirements"] = update.Requirements
		regenerate = true
	}
	if update.Status != nil {
		if !job.IsKnownStatus(*update.Status) {
			return nil, common.NewValidationError("invalid request", map[string]string{"status": "status must be open, closed, or draft"})
		}
		fields["status"] = *update.Status
	}
	if len(fields) == 0 {
		return posting, nil
	}
	if regenerate {
		fields["ai_generated_description"] = s.generateDescription(ctx, title, requirements)
	}
	return s.jobs.Update(ctx, id, fields)
}

func (s *JobService) Delete(ctx context.Context, recruiter *user.User, id common.ID) error {
	posting, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if posting.RecruiterID != recruiter.ID {
		return common.NewError(common.CodeForbidden, "job belongs to another recruiter", nil)
	}
	return s.jobs.Delete(ctx, id)
}

func (s *JobService) generateDescription(ctx context.Context, title string, requirements []string) string {
	if s.gateway == nil {
		return ""
	}
	prompt := fmt.Sprintf("Generate a professional job description for the role of %s. Requirements: %s", title, strings.Join(requirements, ", "))
	result, err := s.gateway.Generate(ctx, prompt, 500)
	if err != nil {
		return ""
	}
	return result.Text
}
