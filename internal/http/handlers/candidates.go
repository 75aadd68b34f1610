package handlers

import (
	"io"
	"net/http"

	"hirepulse/internal/app"
	"hirepulse/internal/common"
	"hirepulse/internal/http/middleware"
	"hirepulse/internal/http/response"
)

const maxResumeBytes = 10 << 20

type CandidateHandler struct {
	resumes      *app.ResumeService
	applications *app.ApplicationService
	interviews   *app.InterviewService
}

func NewCandidateHandler(resumes *app.ResumeService, applications *app.ApplicationService, interviews *app.InterviewService) *CandidateHandler {
	return &CandidateHandler{resumes: resumes, applications: applications, interviews: interviews}
}

// UploadResume accepts a multipart form with a single "resume" file part.
func (h *CandidateHandler) UploadResume(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	if err := r.ParseMultipartForm(maxResumeBytes); err != nil {
		response.Error(w, common.NewError(common.CodeValidation, "invalid multipart form", err))
		return
	}
	file, header, err := r.FormFile("resume")
	if err != nil {
		response.Error(w, common.NewValidationError("invalid request", map[string]string{"resume": "resume file is required"}))
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		response.Error(w, common.NewError(common.CodeValidation, "could not read resume file", err))
		return
	}
	record, err := h.resumes.Upload(r.Context(), principal, data, header.Filename)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, record)
}

func (h *CandidateHandler) GetResume(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	record, err := h.resumes.Get(r.Context(), principal.ID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, record)
}

// DownloadResume streams the original uploaded file back to its owner.
func (h *CandidateHandler) DownloadResume(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	data, contentType, err := h.resumes.Download(r.Context(), principal.ID)
	if err != nil {
		response.Error(w, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

type applyRequest struct {
	CoverLetter string `json:"cover_letter"`
}

func (h *CandidateHandler) Apply(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	jobID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req applyRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			response.Error(w, err)
			return
		}
	}
	created, err := h.applications.Apply(r.Context(), principal, jobID, req.CoverLetter)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *CandidateHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	items, err := h.applications.ListByCandidate(r.Context(), principal)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *CandidateHandler) GetApplication(w http.ResponseWriter, r *http.Request) {
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

func (h *CandidateHandler) ListInterviews(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	items, err := h.interviews.ListByCandidate(r.Context(), principal)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *CandidateHandler) StartInterview(w http.ResponseWriter, r *http.Request) {
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
	item, err := h.interviews.Start(r.Context(), principal, interviewID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

type submitInterviewRequest struct {
	Answers map[string]string `json:"answers"`
}

func (h *CandidateHandler) SubmitInterview(w http.ResponseWriter, r *http.Request) {
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
	var req submitInterviewRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if len(req.Answers) == 0 {
		response.Error(w, common.NewValidationError("invalid request", map[string]string{"answers": "answers are required"}))
		return
	}
	item, err := h.interviews.Submit(r.Context(), principal, interviewID, req.Answers)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}
