package matching

import (
	"math"
	"strings"
	"unicode"
)

// englishStopwords is the usual short list; terms on it never contribute to
// the lexical score.
var englishStopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"but": {}, "by": {}, "for": {}, "from": {}, "has": {}, "have": {},
	"he": {}, "her": {}, "his": {}, "if": {}, "in": {}, "is": {}, "it": {},
	"its": {}, "of": {}, "on": {}, "or": {}, "our": {}, "she": {}, "that": {},
	"the": {}, "their": {}, "they": {}, "this": {}, "to": {}, "was": {},
	"we": {}, "were": {}, "will": {}, "with": {}, "you": {}, "your": {},
}

func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		if len(field) < 2 {
			continue
		}
		if _, stop := englishStopwords[field]; stop {
			continue
		}
		tokens = append(tokens, field)
	}
	return tokens
}

// cosineSimilarity computes TF-IDF weighted cosine similarity between two
// documents. The IDF is smoothed (ln((1+n)/(1+df))+1) so a term shared by
// both documents still carries weight; with unsmoothed IDF two identical
// documents would degenerate to zero vectors.
func cosineSimilarity(textA, textB string) float64 {
	tokensA := tokenize(textA)
	tokensB := tokenize(textB)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}

	countsA := termCounts(tokensA)
	countsB := termCounts(tokensB)

	vocab := map[string]struct{}{}
	for term := range countsA {
		vocab[term] = struct{}{}
	}
	for term := range countsB {
		vocab[term] = struct{}{}
	}

	var dot, normA, normB float64
	for term := range vocab {
		df := 0
		if countsA[term] > 0 {
			df++
		}
		if countsB[term] > 0 {
			df++
		}
		idf := math.Log(3.0/float64(1+df)) + 1
		weightA := float64(countsA[term]) * idf
		weightB := float64(countsB[term]) * idf
		dot += weightA * weightB
		normA += weightA * weightA
		normB += weightB * weightB
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func termCounts(tokens []string) map[string]int {
	counts := make(map[string]int, len(tokens))
	for _, token := range tokens {
		counts[token]++
	}
	return counts
}
