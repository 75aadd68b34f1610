package app

import (
	"context"
	"fmt"

	"hirepulse/internal/common"
	"hirepulse/internal/domain/application"
	"hirepulse/internal/domain/job"
	"hirepulse/internal/domain/resume"
	"hirepulse/internal/domain/user"
	"hirepulse/internal/matching"
	"hirepulse/internal/notify"
)

type ApplicationService struct {
	apps     application.Repository
	jobs     job.Repository
	resumes  resume.Repository
	users    user.Repository
	matcher  *matching.Engine
	notifier *notify.Notifier
	logger   Logger
}

func NewApplicationService(apps application.Repository, jobs job.Repository, resumes resume.Repository, users user.Repository, matcher *matching.Engine, notifier *notify.Notifier, logger Logger) *ApplicationService {
	return &ApplicationService{apps: apps, jobs: jobs, resumes: resumes, users: users, matcher: matcher, notifier: notifier, logger: logger}
}

// Apply creates the candidate's application for a job. The match score is
// computed before the insert, so an application is never visible without it.
// The duplicate check here is a fast path; the storage-level unique index on
// (job_id, candidate_id) is the actual enforcement under concurrency.
func (s *ApplicationService) Apply(ctx context.Context, candidate *user.User, jobID common.ID, coverLetter string) (*application.Application, error) {
	posting, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if posting.Status != job.StatusOpen {
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	if _, err := s.apps.FindByJobAndCandidate(ctx, jobID, candidate.ID); err == nil {
		return nil, common.NewError(common.CodeConflict, "already applied for this job", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	record, err := s.resumes.GetByCandidate(ctx, candidate.ID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodePrecondition, "please upload your resume first", nil)
		}
		return nil, err
	}

	match := s.matcher.Score(ctx, record.Text, posting.Description)
	created, err := s.apps.Create(ctx, application.Application{
		JobID:        jobID,
		CandidateID:  candidate.ID,
		CoverLetter:  coverLetter,
		Status:       application.StatusPending,
		MatchScore:   match.Score,
		MatchSummary: match.Summary,
		MatchMethod:  match.Method,
	})
	if err != nil {
		return nil, err
	}
	// Counter increment is best effort and not transactional with the insert;
	// the counter is display-only.
	if err := s.jobs.IncrementCounter(ctx, jobID, "total_applications"); err != nil {
		s.logger.Error(fmt.Sprintf("application counter increment failed job_id=%s: %v", jobID, err))
	}
	s.logger.Info(fmt.Sprintf("application created application_id=%s job_id=%s score=%.2f method=%s", created.ID, jobID, match.Score, match.Method))
	return created, nil
}

// Review moves an application along the lifecycle. Only the recruiter who
// owns the parent job may transition it, and terminal states are final.
func (s *ApplicationService) Review(ctx context.Context, recruiter *user.User, applicationID common.ID, newStatus application.Status, feedback string) (*application.Application, error) {
	app, err := s.apps.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	posting, err := s.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, err
	}
	if posting.RecruiterID != recruiter.ID {
		return nil, common.NewError(common.CodeForbidden, "application belongs to another recruiter's job", nil)
	}
	if !application.IsKnownStatus(newStatus) {
		return nil, common.NewValidationError("invalid request", map[string]string{"status": "status must be pending, reviewed, interview_scheduled, accepted, or rejected"})
	}
	if newStatus == application.StatusInterviewScheduled {
		return nil, common.NewValidationError("invalid request", map[string]string{"status": "use schedule-interview to move an application to interview_scheduled"})
	}
	if !application.AllowedTransition(app.Status, newStatus) {
		return nil, common.NewError(common.CodeInvalidTransition, fmt.Sprintf("cannot move application from %s to %s", app.Status, newStatus), nil)
	}
	updated, err := s.apps.UpdateStatus(ctx, applicationID, newStatus, feedback)
	if err != nil {
		return nil, err
	}
	s.notifyCandidate(ctx, updated, "Application update", fmt.Sprintf("Your application is now %s.", newStatus))
	s.logger.Info(fmt.Sprintf("application reviewed application_id=%s status=%s", applicationID, newStatus))
	return updated, nil
}

func (s *ApplicationService) ListByCandidate(ctx context.Context, candidate *user.User) ([]application.Application, error) {
	return s.apps.ListByCandidate(ctx, candidate.ID)
}

// ListByRecruiter returns applications across every job the recruiter owns,
// optionally filtered by status.
func (s *ApplicationService) ListByRecruiter(ctx context.Context, recruiter *user.User, status application.Status) ([]application.Application, error) {
	if status != "" && !application.IsKnownStatus(status) {
		return nil, common.NewValidationError("invalid request", map[string]string{"status": "unknown status"})
	}
	postings, err := s.jobs.ListByRecruiter(ctx, recruiter.ID)
	if err != nil {
		return nil, err
	}
	jobIDs := make([]common.ID, 0, len(postings))
	for _, posting := range postings {
		jobIDs = append(jobIDs, posting.ID)
	}
	return s.apps.ListByJobs(ctx, jobIDs, status)
}

func (s *ApplicationService) Get(ctx context.Context, principal *user.User, id common.ID) (*application.Application, error) {
	app, err := s.apps.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	switch principal.Role {
	case user.RoleCandidate:
		if app.CandidateID != principal.ID {
			return nil, common.NewError(common.CodeForbidden, "not your application", nil)
		}
	case user.RoleRecruiter:
		posting, err := s.jobs.GetByID(ctx, app.JobID)
		if err != nil {
			return nil, err
		}
		if posting.RecruiterID != principal.ID {
			return nil, common.NewError(common.CodeForbidden, "application belongs to another recruiter's job", nil)
		}
	}
	return app, nil
}

func (s *ApplicationService) notifyCandidate(ctx context.Context, app *application.Application, subject, body string) {
	if s.notifier == nil {
		return
	}
	candidate, err := s.users.GetByID(ctx, app.CandidateID)
	if err != nil {
		return
	}
	email := candidate.Email
	go func() {
		if err := s.notifier.Send(email, subject, body); err != nil {
			s.logger.Error(fmt.Sprintf("notification failed application_id=%s: %v", app.ID, err))
		}
	}()
}
