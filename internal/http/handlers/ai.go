package handlers

import (
	"io"
	"net/http"
	"strings"

	"hirepulse/internal/app"
	"hirepulse/internal/common"
	"hirepulse/internal/http/response"
)

type AIHandler struct {
	ai *app.AIService
}

func NewAIHandler(ai *app.AIService) *AIHandler {
	return &AIHandler{ai: ai}
}

type jobDescriptionRequest struct {
	Title   string `json:"title"`
	JobType string `json:"job_type"`
}

func (h *AIHandler) JobDescription(w http.ResponseWriter, r *http.Request) {
	var req jobDescriptionRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	jobType := req.JobType
	if jobType == "" {
		jobType = "full-time"
	}
	generated, err := h.ai.GenerateJobDescription(r.Context(), req.Title, jobType)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, generated)
}

type analyzeResumeRequest struct {
	ResumeText     string `json:"resume_text"`
	JobDescription string `json:"job_description"`
}

// AnalyzeResume takes either a multipart form with an optional "resume" file
// plus form fields, or a plain JSON body with the resume text inline.
func (h *AIHandler) AnalyzeResume(w http.ResponseWriter, r *http.Request) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		h.analyzeMultipart(w, r)
		return
	}
	var req analyzeResumeRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	analysis, err := h.ai.AnalyzeResume(r.Context(), nil, "", req.ResumeText, req.JobDescription)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, analysis)
}

func (h *AIHandler) analyzeMultipart(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxResumeBytes); err != nil {
		response.Error(w, common.NewError(common.CodeValidation, "invalid multipart form", err))
		return
	}
	var data []byte
	var filename string
	if file, header, err := r.FormFile("resume"); err == nil {
		defer file.Close()
		data, err = io.ReadAll(file)
		if err != nil {
			response.Error(w, common.NewError(common.CodeValidation, "could not read resume file", err))
			return
		}
		filename = header.Filename
	}
	analysis, err := h.ai.AnalyzeResume(r.Context(), data, filename, r.FormValue("resume_text"), r.FormValue("job_description"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, analysis)
}
