package matching

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

const pythonResume = "Experienced Python developer. Built REST APIs with FastAPI and stored documents in MongoDB. Comfortable with Docker and CI pipelines."

func TestScoreEmptyResume(t *testing.T) {
	engine := NewEngine(nil)
	match := engine.Score(context.Background(), "", "Python backend engineer")
	require.Equal(t, 0.0, match.Score)
	require.Equal(t, "Unable to analyze resume.", match.Summary)
	require.Equal(t, MethodLexical, match.Method)
}

func TestScoreStopwordsOnly(t *testing.T) {
	engine := NewEngine(nil)
	match := engine.Score(context.Background(), "the and of a to", "Python backend engineer")
	require.Equal(t, 0.0, match.Score)
	require.Equal(t, "Unable to analyze resume.", match.Summary)
	require.Equal(t, MethodLexical, match.Method)
}

func TestScoreIdenticalTexts(t *testing.T) {
	engine := NewEngine(nil)
	match := engine.Score(context.Background(), pythonResume, pythonResume)
	require.Equal(t, 100.0, match.Score)
	require.Equal(t, MethodLexical, match.Method)
}

func TestScoreDiscriminates(t *testing.T) {
	engine := NewEngine(nil)
	relevant := engine.Score(context.Background(),
		pythonResume,
		"We are hiring a Python backend engineer with FastAPI and MongoDB experience.")
	irrelevant := engine.Score(context.Background(),
		pythonResume,
		"Seeking a watercolor muralist for large outdoor installations.")
	require.Greater(t, relevant.Score, irrelevant.Score)
}

func TestParseScoreSummary(t *testing.T) {
	score, summary, ok := parseScoreSummary("Score: 85 Summary: Strong match on core skills.")
	require.True(t, ok)
	require.Equal(t, 85.0, score)
	require.Equal(t, "Strong match on core skills.", summary)
}

func TestParseScoreSummaryWithNoise(t *testing.T) {
	score, summary, ok := parseScoreSummary("Here is my analysis.\nScore: 72.5/100\nSummary: Partial overlap.")
	require.True(t, ok)
	require.Equal(t, 72.5, score)
	require.Equal(t, "Partial overlap.", summary)
}

func TestParseScoreSummaryRejectsMalformed(t *testing.T) {
	cases := []string{
		"no structured content at all",
		"Score: eighty Summary: not numeric",
		"Score: 150 Summary: out of range",
		"Score: 85",
		"Summary: missing the score",
	}
	for _, text := range cases {
		_, _, ok := parseScoreSummary(text)
		require.False(t, ok, "expected parse failure for %q", text)
	}
}

func TestTokenizeDropsStopwordsAndShortTokens(t *testing.T) {
	tokens := tokenize("The quick brown fox is on a hill, near Go!")
	require.NotContains(t, tokens, "the")
	require.NotContains(t, tokens, "is")
	require.NotContains(t, tokens, "a")
	require.Contains(t, tokens, "quick")
	require.Contains(t, tokens, "fox")
	require.Contains(t, tokens, "go")
}
