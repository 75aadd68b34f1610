package matching

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"hirepulse/internal/ai"
)

const (
	MethodGenerated = "generated"
	MethodLexical   = "lexical"

	// Prompt cost is bounded by truncating both texts.
	promptPrefixLen = 1000
)

// Match is the outcome of scoring a resume against a job description.
type Match struct {
	Score   float64
	Summary string
	Method  string
}

// Engine prefers an AI-backed analysis and degrades to a deterministic
// lexical similarity when generation is unavailable or unparseable.
type Engine struct {
	gateway *ai.Gateway
}

func NewEngine(gateway *ai.Gateway) *Engine {
	return &Engine{gateway: gateway}
}

// Score never returns an error: every failure path lands on the lexical
// fallback, and the fallback itself is total over its inputs.
func (e *Engine) Score(ctx context.Context, resumeText, jobDescription string) Match {
	if e.gateway != nil {
		prompt := buildAnalysisPrompt(resumeText, jobDescription)
		if result, err := e.gateway.Generate(ctx, prompt, 500); err == nil {
			if score, summary, ok := parseScoreSummary(result.Text); ok {
				return Match{Score: score, Summary: summary, Method: MethodGenerated}
			}
			// Unparseable generation counts as failed for scoring purposes.
		}
	}
	return e.lexical(resumeText, jobDescription)
}

func (e *Engine) lexical(resumeText, jobDescription string) Match {
	if len(tokenize(resumeText)) == 0 || len(tokenize(jobDescription)) == 0 {
		return Match{Score: 0, Summary: "Unable to analyze resume.", Method: MethodLexical}
	}
	similarity := cosineSimilarity(resumeText, jobDescription)
	score := math.Round(similarity*100*100) / 100
	return Match{Score: score, Summary: "Basic resume analysis completed.", Method: MethodLexical}
}

func buildAnalysisPrompt(resumeText, jobDescription string) string {
	return fmt.Sprintf(
		"Analyze this resume against the job description and provide a score (0-100) and a brief summary. Respond with 'Score: <number>' and 'Summary: <text>'. Resume: %s Job Description: %s",
		truncate(resumeText, promptPrefixLen),
		truncate(jobDescription, promptPrefixLen),
	)
}

// parseScoreSummary is deliberately lenient: the upstream text format is not
// contractually stable, so anything that does not yield both tokens reports
// not-ok and the caller falls through to the lexical path.
func parseScoreSummary(text string) (float64, string, bool) {
	scoreIdx := strings.Index(text, "Score:")
	summaryIdx := strings.Index(text, "Summary:")
	if scoreIdx < 0 || summaryIdx < 0 {
		return 0, "", false
	}

	scorePart := text[scoreIdx+len("Score:"):]
	fields := strings.Fields(scorePart)
	if len(fields) == 0 {
		return 0, "", false
	}
	// Generated text often writes "72.5/100" or "85." so only the leading
	// numeric run of the token counts.
	raw := strings.TrimLeftFunc(fields[0], func(r rune) bool {
		return r != '.' && (r < '0' || r > '9')
	})
	end := 0
	for end < len(raw) && (raw[end] == '.' || (raw[end] >= '0' && raw[end] <= '9')) {
		end++
	}
	score, err := strconv.ParseFloat(strings.TrimSuffix(raw[:end], "."), 64)
	if err != nil || score < 0 || score > 100 {
		return 0, "", false
	}

	summary := strings.TrimSpace(text[summaryIdx+len("Summary:"):])
	if summary == "" {
		return 0, "", false
	}
	return score, summary, true
}

func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit]
}
