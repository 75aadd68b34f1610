package handlers

import (
	"net/http"
	"time"

	"hirepulse/internal/app"
	"hirepulse/internal/common"
	"hirepulse/internal/domain/application"
	"hirepulse/internal/domain/interview"
	"hirepulse/internal/http/middleware"
	"hirepulse/internal/http/response"
)

type RecruiterHandler struct {
	applications *app.ApplicationService
	interviews   *app.InterviewService
}

func NewRecruiterHandler(applications *app.ApplicationService, interviews *app.InterviewService) *RecruiterHandler {
	return &RecruiterHandler{applications: applications, interviews: interviews}
}

func (h *RecruiterHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	status := application.Status(r.URL.Query().Get("status"))
	items, err := h.applications.ListByRecruiter(r.Context(), principal, status)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *RecruiterHandler) GetApplication(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	applicationID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	item, err := h.applications.Get(r.Context(), principal, applicationID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

type reviewRequest struct {
	Status   string `json:"status"`
	Feedback string `json:"feedback"`
}

func (h *RecruiterHandler) Review(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	applicationID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if req.Status == "" {
		response.Error(w, common.NewValidationError("invalid request", map[string]string{"status": "status is required"}))
		return
	}
	updated, err := h.applications.Review(r.Context(), principal, applicationID, application.Status(req.Status), req.Feedback)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

type scheduleInterviewRequest struct {
	ScheduledAt    *time.Time `json:"scheduled_at"`
	TotalQuestions int        `json:"total_questions"`
}

func (h *RecruiterHandler) ScheduleInterview(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	applicationID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req scheduleInterviewRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			response.Error(w, err)
			return
		}
	}
	created, err := h.interviews.Schedule(r.Context(), principal, applicationID, req.ScheduledAt, req.TotalQuestions)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *RecruiterHandler) ListInterviews(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	status := interview.Status(r.URL.Query().Get("status"))
	items, err := h.interviews.ListByRecruiter(r.Context(), principal, status)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *RecruiterHandler) CancelInterview(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	interviewID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.interviews.Cancel(r.Context(), principal, interviewID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

type feedbackRequest struct {
	Score    *float64 `json:"score"`
	Feedback string   `json:"feedback"`
}

func (h *RecruiterHandler) InterviewFeedback(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	interviewID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req feedbackRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.interviews.Feedback(r.Context(), principal, interviewID, req.Score, req.Feedback)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}
