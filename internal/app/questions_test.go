package app

import (
	"testing"

	"hirepulse/internal/domain/interview"
)

const sampleGeneratedQuestions = `Here are the interview questions:

1. Which data structure gives O(1) average lookup?
a) Linked list
b) Hash map (correct)
c) Binary tree
d) Array

2) What does a context.Context carry across API boundaries?
a. Deadlines and cancellation (Correct)
b. Database connections
c. Log output
d. Goroutine stacks

3. Unfinished question with no options
`

func TestParseQuestions(t *testing.T) {
	questions := parseQuestions(sampleGeneratedQuestions)
	if len(questions) != 2 {
		t.Fatalf("expected 2 parsed questions, got %d", len(questions))
	}

	first := questions[0]
	if first.Text != "Which data structure gives O(1) average lookup?" {
		t.Fatalf("unexpected question text: %q", first.Text)
	}
	if len(first.Options) != 4 {
		t.Fatalf("expected 4 options, got %d", len(first.Options))
	}
	if first.CorrectAnswer != "Hash map" {
		t.Fatalf("expected marker option as answer, got %q", first.CorrectAnswer)
	}
	if first.ID == "" {
		t.Fatal("parsed question has no id")
	}

	second := questions[1]
	if second.CorrectAnswer != "Deadlines and cancellation" {
		t.Fatalf("case-variant marker not honored, got %q", second.CorrectAnswer)
	}
}

func TestParseQuestionsStripsMixedCaseMarker(t *testing.T) {
	questions := parseQuestions("1. Pick one\na) Alpha (CoRrEcT)\nb) Beta\n2. Pick another\na) Gamma (AnSwEr)\nb) Delta")
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	if questions[0].Options[0] != "Alpha" || questions[1].Options[0] != "Gamma" {
		t.Fatalf("markers left embedded in options: %v / %v", questions[0].Options, questions[1].Options)
	}
	if questions[0].CorrectAnswer != "Alpha" || questions[1].CorrectAnswer != "Gamma" {
		t.Fatalf("marked options not honored: %q, %q", questions[0].CorrectAnswer, questions[1].CorrectAnswer)
	}
}

func TestParseQuestionsDefaultsAnswerToFirstOption(t *testing.T) {
	questions := parseQuestions("1. Pick one\na) Alpha\nb) Beta")
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
	if questions[0].CorrectAnswer != "Alpha" {
		t.Fatalf("expected first option as default answer, got %q", questions[0].CorrectAnswer)
	}
}

func TestParseQuestionsGarbage(t *testing.T) {
	if questions := parseQuestions("no structure here\njust prose"); len(questions) != 0 {
		t.Fatalf("expected no questions, got %d", len(questions))
	}
}

func TestBackfillQuestionsTopsUp(t *testing.T) {
	parsed := []interview.Question{{Text: "only one", Options: []string{"a", "b"}, CorrectAnswer: "a"}}
	filled := backfillQuestions(parsed, 5)
	if len(filled) != 5 {
		t.Fatalf("expected 5 questions, got %d", len(filled))
	}
	if filled[0].Text != "only one" {
		t.Fatal("parsed question should come first")
	}
	for i, question := range filled[1:] {
		if question.ID == "" {
			t.Fatalf("backfilled question %d has no id", i+1)
		}
	}
}

func TestBackfillQuestionsTruncates(t *testing.T) {
	var parsed []interview.Question
	for i := 0; i < 8; i++ {
		parsed = append(parsed, interview.Question{Text: "q", Options: []string{"a"}, CorrectAnswer: "a"})
	}
	if filled := backfillQuestions(parsed, 3); len(filled) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(filled))
	}
}

func TestBackfillQuestionsFromNothing(t *testing.T) {
	filled := backfillQuestions(nil, 7)
	if len(filled) != 7 {
		t.Fatalf("expected 7 questions, got %d", len(filled))
	}
	// Pool is shorter than 7, so it must cycle rather than run out.
	if filled[5].Text != filled[0].Text {
		t.Fatal("expected the pool to cycle")
	}
}
