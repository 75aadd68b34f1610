package app

import (
	"strings"

	"hirepulse/internal/common"
	"hirepulse/internal/domain/interview"
)

// genericQuestions backfills an interview when generation produces fewer
// parsed questions than requested, so an interview is never created empty.
var genericQuestions = []interview.Question{
	{
		Text:          "What is your greatest strength?",
		Options:       []string{"Problem-solving", "Communication", "Leadership", "Technical skills"},
		CorrectAnswer: "Problem-solving",
	},
	{
		Text:          "How do you approach a task you have never done before?",
		Options:       []string{"Research first, then prototype", "Ask a colleague to do it", "Postpone it", "Guess and hope"},
		CorrectAnswer: "Research first, then prototype",
	},
	{
		Text:          "How do you handle disagreement in a code review?",
		Options:       []string{"Discuss the trade-offs with the reviewer", "Merge anyway", "Close the review", "Escalate immediately"},
		CorrectAnswer: "Discuss the trade-offs with the reviewer",
	},
	{
		Text:          "A production incident occurs outside your area. What do you do first?",
		Options:       []string{"Check whether you can help and notify the owner", "Ignore it", "Restart every service", "Wait for instructions"},
		CorrectAnswer: "Check whether you can help and notify the owner",
	},
	{
		Text:          "How do you keep your skills current?",
		Options:       []string{"Regular reading and side projects", "Only through assigned work", "Conferences once a decade", "I do not"},
		CorrectAnswer: "Regular reading and side projects",
	},
}

const correctMarker = "(correct)"
const answerMarker = "(answer)"

// parseQuestions walks the generated text line by line: a numbered line
// ("1." or "1)") starts a question, a lettered line ("a)" .. "d)") adds an
// option, and a trailing correctness marker on an option designates the
// answer. The format is not contractually stable, so anything unparseable is
// simply skipped.
func parseQuestions(text string) []interview.Question {
	var questions []interview.Question
	var current *interview.Question

	flush := func() {
		if current != nil && current.Text != "" && len(current.Options) > 0 {
			if current.CorrectAnswer == "" {
				current.CorrectAnswer = current.Options[0]
			}
			questions = append(questions, *current)
		}
		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if questionText, ok := splitNumbered(line); ok {
			flush()
			current = &interview.Question{Text: questionText}
			continue
		}
		if option, ok := splitLettered(line); ok && current != nil {
			lowered := strings.ToLower(option)
			isCorrect := strings.Contains(lowered, correctMarker) || strings.Contains(lowered, answerMarker)
			option = strings.TrimSpace(stripMarkers(option))
			if option == "" {
				continue
			}
			current.Options = append(current.Options, option)
			if isCorrect {
				current.CorrectAnswer = option
			}
		}
	}
	flush()

	for i := range questions {
		questions[i].ID = common.NewID()
	}
	return questions
}

func splitNumbered(line string) (string, bool) {
	idx := 0
	for idx < len(line) && line[idx] >= '0' && line[idx] <= '9' {
		idx++
	}
	if idx == 0 || idx >= len(line) {
		return "", false
	}
	if line[idx] != '.' && line[idx] != ')' {
		return "", false
	}
	text := strings.TrimSpace(line[idx+1:])
	if text == "" {
		return "", false
	}
	return text, true
}

func splitLettered(line string) (string, bool) {
	if len(line) < 3 {
		return "", false
	}
	first := line[0] | 0x20
	if first < 'a' || first > 'd' {
		return "", false
	}
	if line[1] != ')' && line[1] != '.' {
		return "", false
	}
	option := strings.TrimSpace(line[2:])
	if option == "" {
		return "", false
	}
	return option, true
}

// stripMarkers removes every case variant of the correctness markers, so the
// stored option matches what detection saw.
func stripMarkers(option string) string {
	for _, marker := range []string{correctMarker, answerMarker} {
		for i := 0; i+len(marker) <= len(option); {
			if strings.EqualFold(option[i:i+len(marker)], marker) {
				option = option[:i] + option[i+len(marker):]
				continue
			}
			i++
		}
	}
	return option
}

// backfillQuestions tops a parsed set up to the requested count from the
// generic pool, cycling if the pool is shorter than the shortfall.
func backfillQuestions(parsed []interview.Question, total int) []interview.Question {
	if total <= 0 {
		total = 5
	}
	if len(parsed) > total {
		parsed = parsed[:total]
	}
	for i := 0; len(parsed) < total; i++ {
		generic := genericQuestions[i%len(genericQuestions)]
		generic.ID = common.NewID()
		parsed = append(parsed, generic)
	}
	return parsed
}
