package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"hirepulse/internal/common"
	"hirepulse/internal/domain/application"
	"hirepulse/internal/domain/interview"
	"hirepulse/internal/domain/user"
)

type fakeInterviewRepo struct {
	mu    sync.Mutex
	items map[common.ID]*interview.Interview
}

func newFakeInterviewRepo() *fakeInterviewRepo {
	return &fakeInterviewRepo{items: make(map[common.ID]*interview.Interview)}
}

func cloneInterview(item *interview.Interview) *interview.Interview {
	copied := *item
	copied.Questions = append([]interview.Question(nil), item.Questions...)
	return &copied
}

func (r *fakeInterviewRepo) Create(ctx context.Context, item interview.Interview) (*interview.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item.ID = common.NewID()
	item.CreatedAt = time.Now().UTC()
	r.items[item.ID] = &item
	return cloneInterview(&item), nil
}

func (r *fakeInterviewRepo) GetByID(ctx context.Context, id common.ID) (*interview.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item := r.items[id]
	if item == nil {
		return nil, common.NewError(common.CodeNotFound, "interview not found", nil)
	}
	return cloneInterview(item), nil
}

func (r *fakeInterviewRepo) ListByCandidate(ctx context.Context, candidateID common.ID) ([]interview.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []interview.Interview
	for _, item := range r.items {
		if item.CandidateID == candidateID {
			items = append(items, *cloneInterview(item))
		}
	}
	return items, nil
}

func (r *fakeInterviewRepo) ListByRecruiter(ctx context.Context, recruiterID common.ID, status interview.Status) ([]interview.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []interview.Interview
	for _, item := range r.items {
		if item.RecruiterID != recruiterID {
			continue
		}
		if status != "" && item.Status != status {
			continue
		}
		items = append(items, *cloneInterview(item))
	}
	return items, nil
}

func (r *fakeInterviewRepo) UpdateStatus(ctx context.Context, id common.ID, status interview.Status) (*interview.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item := r.items[id]
	if item == nil {
		return nil, common.NewError(common.CodeNotFound, "interview not found", nil)
	}
	item.Status = status
	return cloneInterview(item), nil
}

func (r *fakeInterviewRepo) SaveSubmission(ctx context.Context, id common.ID, answers map[string]string, score float64, status interview.Status) (*interview.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item := r.items[id]
	if item == nil {
		return nil, common.NewError(common.CodeNotFound, "interview not found", nil)
	}
	item.Answers = answers
	item.Score = &score
	item.Status = status
	return cloneInterview(item), nil
}

func (r *fakeInterviewRepo) SaveFeedback(ctx context.Context, id common.ID, score *float64, feedback string) (*interview.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item := r.items[id]
	if item == nil {
		return nil, common.NewError(common.CodeNotFound, "interview not found", nil)
	}
	if score != nil {
		item.Score = score
	}
	item.Feedback = feedback
	return cloneInterview(item), nil
}

type interviewFixture struct {
	*applicationFixture
	interviews *fakeInterviewRepo
	service    *InterviewService
	app        *application.Application
}

// newInterviewFixture creates an application already moved to reviewed, the
// state interviews are scheduled from.
func newInterviewFixture(t *testing.T) *interviewFixture {
	t.Helper()
	base := newApplicationFixture(t)
	base.uploadResume(t, "Go developer with five years of backend experience")
	created, err := base.service.Apply(context.Background(), base.candidate, base.posting.ID, "")
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	reviewed, err := base.service.Review(context.Background(), base.recruiter, created.ID, application.StatusReviewed, "")
	if err != nil {
		t.Fatalf("review failed: %v", err)
	}

	interviews := newFakeInterviewRepo()
	service := NewInterviewService(interviews, base.apps, base.jobs, base.resumes, base.users, nil, nil, noopLogger{})
	return &interviewFixture{
		applicationFixture: base,
		interviews:         interviews,
		service:            service,
		app:                reviewed,
	}
}

func TestScheduleInterview(t *testing.T) {
	f := newInterviewFixture(t)

	created, err := f.service.Schedule(context.Background(), f.recruiter, f.app.ID, nil, 5)
	if err != nil {
		t.Fatalf("schedule failed: %v", err)
	}
	if created.Status != interview.StatusPending {
		t.Fatalf("expected pending interview, got %s", created.Status)
	}
	if len(created.Questions) != 5 {
		t.Fatalf("expected 5 questions, got %d", len(created.Questions))
	}
	for i, question := range created.Questions {
		if question.CorrectAnswer == "" {
			t.Fatalf("question %d has no answer key", i)
		}
	}

	updated, err := f.apps.GetByID(context.Background(), f.app.ID)
	if err != nil {
		t.Fatalf("get application: %v", err)
	}
	if updated.Status != application.StatusInterviewScheduled {
		t.Fatalf("application not flipped, got %s", updated.Status)
	}
	if got := f.jobs.counter(f.posting.ID, "total_interviews"); got != 1 {
		t.Fatalf("expected interview counter 1, got %d", got)
	}
}

func TestScheduleOnlyFromReviewed(t *testing.T) {
	f := newInterviewFixture(t)

	// Move the application past reviewed first.
	if _, err := f.service.Schedule(context.Background(), f.recruiter, f.app.ID, nil, 3); err != nil {
		t.Fatalf("schedule failed: %v", err)
	}
	if _, err := f.service.Schedule(context.Background(), f.recruiter, f.app.ID, nil, 3); !common.Is(err, common.CodeInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}

	// Status must be unchanged by the failed attempt.
	current, err := f.apps.GetByID(context.Background(), f.app.ID)
	if err != nil {
		t.Fatalf("get application: %v", err)
	}
	if current.Status != application.StatusInterviewScheduled {
		t.Fatalf("status changed by rejected schedule, got %s", current.Status)
	}
}

func TestScheduleOwnership(t *testing.T) {
	f := newInterviewFixture(t)
	other, err := f.users.Create(context.Background(), user.User{Email: "other@example.com", Role: user.RoleRecruiter})
	if err != nil {
		t.Fatalf("create other recruiter: %v", err)
	}
	if _, err := f.service.Schedule(context.Background(), other, f.app.ID, nil, 3); !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestInterviewSubmitAutoScores(t *testing.T) {
	f := newInterviewFixture(t)
	created, err := f.service.Schedule(context.Background(), f.recruiter, f.app.ID, nil, 4)
	if err != nil {
		t.Fatalf("schedule failed: %v", err)
	}
	if _, err := f.service.Start(context.Background(), f.candidate, created.ID); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	// Answer half the questions correctly.
	answers := make(map[string]string)
	for i, question := range created.Questions {
		if i%2 == 0 {
			answers[question.ID.String()] = question.CorrectAnswer
		} else {
			answers[question.ID.String()] = "definitely wrong"
		}
	}
	submitted, err := f.service.Submit(context.Background(), f.candidate, created.ID, answers)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if submitted.Status != interview.StatusCompleted {
		t.Fatalf("expected completed, got %s", submitted.Status)
	}
	if submitted.Score == nil || *submitted.Score != 50.0 {
		t.Fatalf("expected score 50, got %v", submitted.Score)
	}
}

func TestInterviewSubmitRequiresStart(t *testing.T) {
	f := newInterviewFixture(t)
	created, err := f.service.Schedule(context.Background(), f.recruiter, f.app.ID, nil, 3)
	if err != nil {
		t.Fatalf("schedule failed: %v", err)
	}
	if _, err := f.service.Submit(context.Background(), f.candidate, created.ID, map[string]string{"x": "y"}); !common.Is(err, common.CodeInvalidTransition) {
		t.Fatalf("expected invalid transition for pending interview, got %v", err)
	}
}

func TestInterviewCandidateOwnership(t *testing.T) {
	f := newInterviewFixture(t)
	created, err := f.service.Schedule(context.Background(), f.recruiter, f.app.ID, nil, 3)
	if err != nil {
		t.Fatalf("schedule failed: %v", err)
	}
	other, err := f.users.Create(context.Background(), user.User{Email: "stranger@example.com", Role: user.RoleCandidate})
	if err != nil {
		t.Fatalf("create other candidate: %v", err)
	}
	if _, err := f.service.Start(context.Background(), other, created.ID); !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestInterviewCancel(t *testing.T) {
	f := newInterviewFixture(t)
	created, err := f.service.Schedule(context.Background(), f.recruiter, f.app.ID, nil, 3)
	if err != nil {
		t.Fatalf("schedule failed: %v", err)
	}
	cancelled, err := f.service.Cancel(context.Background(), f.recruiter, created.ID)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.Status != interview.StatusCancelled {
		t.Fatalf("expected cancelled, got %s", cancelled.Status)
	}
	// Cancelled is terminal.
	if _, err := f.service.Start(context.Background(), f.candidate, created.ID); !common.Is(err, common.CodeInvalidTransition) {
		t.Fatalf("expected invalid transition on cancelled interview, got %v", err)
	}
}

func TestInterviewFeedbackValidation(t *testing.T) {
	f := newInterviewFixture(t)
	created, err := f.service.Schedule(context.Background(), f.recruiter, f.app.ID, nil, 3)
	if err != nil {
		t.Fatalf("schedule failed: %v", err)
	}
	bad := 150.0
	if _, err := f.service.Feedback(context.Background(), f.recruiter, created.ID, &bad, ""); !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	good := 87.5
	updated, err := f.service.Feedback(context.Background(), f.recruiter, created.ID, &good, "solid answers")
	if err != nil {
		t.Fatalf("feedback failed: %v", err)
	}
	if updated.Score == nil || *updated.Score != 87.5 {
		t.Fatalf("score override not stored, got %v", updated.Score)
	}
	if updated.Feedback != "solid answers" {
		t.Fatalf("feedback not stored: %q", updated.Feedback)
	}
}

func TestCandidateListingHidesAnswerKey(t *testing.T) {
	f := newInterviewFixture(t)
	if _, err := f.service.Schedule(context.Background(), f.recruiter, f.app.ID, nil, 3); err != nil {
		t.Fatalf("schedule failed: %v", err)
	}
	items, err := f.service.ListByCandidate(context.Background(), f.candidate)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 interview, got %d", len(items))
	}
	for i, question := range items[0].Questions {
		if question.CorrectAnswer != "" {
			t.Fatalf("answer key leaked on question %d of a pending interview", i)
		}
	}
}
