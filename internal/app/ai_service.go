package app

import (
	"context"
	"fmt"
	"strings"

	"hirepulse/internal/ai"
	"hirepulse/internal/common"
	"hirepulse/internal/extract"
	"hirepulse/internal/matching"
)

// AIService backs the pure-generation endpoints. Unlike the matching engine
// these have no deterministic fallback, so all-backends-failed surfaces as
// the unavailable code.
type AIService struct {
	gateway *ai.Gateway
	matcher *matching.Engine
	logger  Logger
}

func NewAIService(gateway *ai.Gateway, matcher *matching.Engine, logger Logger) *AIService {
	return &AIService{gateway: gateway, matcher: matcher, logger: logger}
}

type GeneratedJobDescription struct {
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	Backend      string `json:"backend"`
}

// GenerateJobDescription produces description and requirements sections for
// a role. Sections mentioning requirements or qualifications are split out,
// everything else becomes the description.
func (s *AIService) GenerateJobDescription(ctx context.Context, title, jobType string) (*GeneratedJobDescription, error) {
	if strings.TrimSpace(title) == "" {
		return nil, common.NewValidationError("invalid request", map[string]string{"title": "title is required"})
	}
	prompt := fmt.Sprintf("Generate a professional job description and requirements for a %s position as %s. Include key responsibilities, required skills, and qualifications.", jobType, title)
	result, err := s.gateway.Generate(ctx, prompt, 500)
	if err != nil {
		return nil, err
	}

	var description, requirements strings.Builder
	for _, section := range strings.Split(result.Text, "\n\n") {
		lowered := strings.ToLower(section)
		if strings.Contains(lowered, "requirements") || strings.Contains(lowered, "qualifications") {
			requirements.WriteString(section)
			requirements.WriteString("\n\n")
		} else {
			description.WriteString(section)
			description.WriteString("\n\n")
		}
	}
	return &GeneratedJobDescription{
		Description:  strings.TrimSpace(description.String()),
		Requirements: strings.TrimSpace(requirements.String()),
		Backend:      result.Backend,
	}, nil
}

type ResumeAnalysis struct {
	Summary    string   `json:"summary"`
	MatchScore *float64 `json:"match_score,omitempty"`
	Method     string   `json:"method"`
}

// AnalyzeResume scores an ad-hoc resume (file bytes or raw text) against an
// optional job description. Summary generation is best effort; scoring
// always succeeds via the matching engine's fallback.
func (s *AIService) AnalyzeResume(ctx context.Context, fileData []byte, filename, resumeText, jobDescription string) (*ResumeAnalysis, error) {
	if len(fileData) > 0 {
		extracted, err := extract.Text(fileData, filename)
		if err != nil {
			return nil, err
		}
		resumeText = extracted
	}
	if strings.TrimSpace(resumeText) == "" {
		return nil, common.NewValidationError("invalid request", map[string]string{"resume": "either a resume file or resume text is required"})
	}

	summary := "Summary generation not available."
	if result, err := s.gateway.Generate(ctx, "Summarize this resume in 3-4 sentences: "+truncatePrompt(resumeText), 300); err == nil {
		summary = result.Text
	}

	analysis := &ResumeAnalysis{Summary: summary}
	if strings.TrimSpace(jobDescription) != "" {
		match := s.matcher.Score(ctx, resumeText, jobDescription)
		analysis.MatchScore = &match.Score
		analysis.Method = match.Method
	}
	return analysis, nil
}
