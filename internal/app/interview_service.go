package app

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"hirepulse/internal/ai"
	"hirepulse/internal/common"
	"hirepulse/internal/domain/application"
	"hirepulse/internal/domain/interview"
	"hirepulse/internal/domain/job"
	"hirepulse/internal/domain/resume"
	"hirepulse/internal/domain/user"
	"hirepulse/internal/notify"
)

const questionPromptPrefixLen = 1000

type InterviewService struct {
	interviews interview.Repository
	apps       application.Repository
	jobs       job.Repository
	resumes    resume.Repository
	users      user.Repository
	gateway    *ai.Gateway
	notifier   *notify.Notifier
	logger     Logger
}

func NewInterviewService(interviews interview.Repository, apps application.Repository, jobs job.Repository, resumes resume.Repository, users user.Repository, gateway *ai.Gateway, notifier *notify.Notifier, logger Logger) *InterviewService {
	return &InterviewService{interviews: interviews, apps: apps, jobs: jobs, resumes: resumes, users: users, gateway: gateway, notifier: notifier, logger: logger}
}

// Schedule is legal only from the reviewed state. It generates the question
// set, creates the interview, flips the application to interview_scheduled,
// and bumps the job's interview counter.
func (s *InterviewService) Schedule(ctx context.Context, recruiter *user.User, applicationID common.ID, slot *time.Time, totalQuestions int) (*interview.Interview, error) {
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
	if app.Status != application.StatusReviewed {
		return nil, common.NewError(common.CodeInvalidTransition, fmt.Sprintf("cannot schedule an interview for a %s application", app.Status), nil)
	}
	record, err := s.resumes.GetByCandidate(ctx, app.CandidateID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodePrecondition, "candidate resume not found", nil)
		}
		return nil, err
	}

	questions := s.generateQuestions(ctx, posting.Description, record.Text, totalQuestions)
	created, err := s.interviews.Create(ctx, interview.Interview{
		JobID:       app.JobID,
		CandidateID: app.CandidateID,
		RecruiterID: recruiter.ID,
		Status:      interview.StatusPending,
		ScheduledAt: slot,
		Questions:   questions,
	})
	if err != nil {
		return nil, err
	}
	if _, err := s.apps.UpdateStatus(ctx, applicationID, application.StatusInterviewScheduled, ""); err != nil {
		return nil, err
	}
	if err := s.jobs.IncrementCounter(ctx, app.JobID, "total_interviews"); err != nil {
		s.logger.Error(fmt.Sprintf("interview counter increment failed job_id=%s: %v", app.JobID, err))
	}
	s.notifyCandidate(ctx, created.CandidateID, "Interview scheduled", "An interview has been scheduled for your application.")
	s.logger.Info(fmt.Sprintf("interview scheduled interview_id=%s application_id=%s questions=%d", created.ID, applicationID, len(questions)))
	return created, nil
}

// Start moves the candidate's interview from pending to in_progress.
func (s *InterviewService) Start(ctx context.Context, candidate *user.User, interviewID common.ID) (*interview.Interview, error) {
	item, err := s.interviews.GetByID(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	if item.CandidateID != candidate.ID {
		return nil, common.NewError(common.CodeForbidden, "not your interview", nil)
	}
	if !interview.AllowedTransition(item.Status, interview.StatusInProgress) {
		return nil, common.NewError(common.CodeInvalidTransition, fmt.Sprintf("cannot start a %s interview", item.Status), nil)
	}
	return s.interviews.UpdateStatus(ctx, interviewID, interview.StatusInProgress)
}

// Submit records the candidate's answers, auto-scores the multiple-choice
// set, and completes the interview in a single write.
func (s *InterviewService) Submit(ctx context.Context, candidate *user.User, interviewID common.ID, answers map[string]string) (*interview.Interview, error) {
	item, err := s.interviews.GetByID(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	if item.CandidateID != candidate.ID {
		return nil, common.NewError(common.CodeForbidden, "not your interview", nil)
	}
	if !interview.AllowedTransition(item.Status, interview.StatusCompleted) {
		return nil, common.NewError(common.CodeInvalidTransition, fmt.Sprintf("cannot submit a %s interview", item.Status), nil)
	}
	score := autoScore(item.Questions, answers)
	updated, err := s.interviews.SaveSubmission(ctx, interviewID, answers, score, interview.StatusCompleted)
	if err != nil {
		return nil, err
	}
	s.logger.Info(fmt.Sprintf("interview submitted interview_id=%s score=%.2f", interviewID, score))
	return updated, nil
}

func (s *InterviewService) Cancel(ctx context.Context, recruiter *user.User, interviewID common.ID) (*interview.Interview, error) {
	item, err := s.interviews.GetByID(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	if item.RecruiterID != recruiter.ID {
		return nil, common.NewError(common.CodeForbidden, "not your interview", nil)
	}
	if !interview.AllowedTransition(item.Status, interview.StatusCancelled) {
		return nil, common.NewError(common.CodeInvalidTransition, fmt.Sprintf("cannot cancel a %s interview", item.Status), nil)
	}
	updated, err := s.interviews.UpdateStatus(ctx, interviewID, interview.StatusCancelled)
	if err != nil {
		return nil, err
	}
	s.notifyCandidate(ctx, item.CandidateID, "Interview cancelled", "Your scheduled interview has been cancelled.")
	return updated, nil
}

// Feedback lets the owning recruiter attach feedback and overwrite the
// auto-computed score.
func (s *InterviewService) Feedback(ctx context.Context, recruiter *user.User, interviewID common.ID, score *float64, feedback string) (*interview.Interview, error) {
	item, err := s.interviews.GetByID(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	if item.RecruiterID != recruiter.ID {
		return nil, common.NewError(common.CodeForbidden, "not your interview", nil)
	}
	if score != nil && (*score < 0 || *score > 100) {
		return nil, common.NewValidationError("invalid request", map[string]string{"score": "score must be between 0 and 100"})
	}
	return s.interviews.SaveFeedback(ctx, interviewID, score, feedback)
}

func (s *InterviewService) ListByCandidate(ctx context.Context, candidate *user.User) ([]interview.Interview, error) {
	items, err := s.interviews.ListByCandidate(ctx, candidate.ID)
	if err != nil {
		return nil, err
	}
	// Candidates never see the answer key before completing.
	for i := range items {
		if !interview.IsTerminal(items[i].Status) {
			for j := range items[i].Questions {
				items[i].Questions[j].CorrectAnswer = ""
			}
		}
	}
	return items, nil
}

func (s *InterviewService) ListByRecruiter(ctx context.Context, recruiter *user.User, status interview.Status) ([]interview.Interview, error) {
	return s.interviews.ListByRecruiter(ctx, recruiter.ID, status)
}

func (s *InterviewService) generateQuestions(ctx context.Context, jobDescription, resumeText string, total int) []interview.Question {
	if total <= 0 {
		total = 5
	}
	var parsed []interview.Question
	if s.gateway != nil {
		prompt := fmt.Sprintf(
			"Generate %d multiple choice interview questions based on this job description and resume. Number each question, list options as a) to d), and mark the right option with (correct). Job: %s Resume: %s",
			total,
			truncatePrompt(jobDescription),
			truncatePrompt(resumeText),
		)
		if result, err := s.gateway.Generate(ctx, prompt, 1000); err == nil {
			parsed = parseQuestions(result.Text)
		}
	}
	return backfillQuestions(parsed, total)
}

func (s *InterviewService) notifyCandidate(ctx context.Context, candidateID common.ID, subject, body string) {
	if s.notifier == nil {
		return
	}
	candidate, err := s.users.GetByID(ctx, candidateID)
	if err != nil {
		return
	}
	email := candidate.Email
	go func() {
		if err := s.notifier.Send(email, subject, body); err != nil {
			s.logger.Error(fmt.Sprintf("notification failed candidate_id=%s: %v", candidateID, err))
		}
	}()
}

func autoScore(questions []interview.Question, answers map[string]string) float64 {
	if len(questions) == 0 {
		return 0
	}
	correct := 0
	for _, question := range questions {
		answer, ok := answers[question.ID.String()]
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(question.CorrectAnswer)) {
			correct++
		}
	}
	return math.Round(float64(correct)/float64(len(questions))*100*100) / 100
}

func truncatePrompt(text string) string {
	if len(text) <= questionPromptPrefixLen {
		return text
	}
	return text[:questionPromptPrefixLen]
}
