package domain

import (
	"strings"
	"unicode"
)

// Grade buckets a pronunciation similarity score
type Grade string

const (
	GradeExcellent Grade = "excellent"
	GradeGood      Grade = "good"
	GradeRetry     Grade = "retry"
)

// GradeFor maps a similarity in [0, 1] to a grade
func GradeFor(similarity float64) Grade {
	switch {
	case similarity > 0.8:
		return GradeExcellent
	case similarity > 0.6:
		return GradeGood
	default:
		return GradeRetry
	}
}

// Success reports whether the grade counts as a successful attempt
func (g Grade) Success() bool {
	return g == GradeExcellent || g == GradeGood
}

// Message returns feedback for the learner
func (g Grade) Message() string {
	switch g {
	case GradeExcellent:
		return "Excellent pronunciation!"
	case GradeGood:
		return "Good job! Keep practicing."
	default:
		return "Try again. Listen carefully and repeat."
	}
}

// Similarity is the bag-of-words overlap between a transcript and the
// target phrase: spoken words found in the target divided by the longer
// word count. Case and punctuation are ignored.
func Similarity(spoken, target string) float64 {
	spokenWords := tokenize(spoken)
	targetWords := tokenize(target)

	longest := len(spokenWords)
	if len(targetWords) > longest {
		longest = len(targetWords)
	}
	if longest == 0 {
		return 0
	}

	vocabulary := make(map[string]bool, len(targetWords))
	for _, w := range targetWords {
		vocabulary[w] = true
	}

	matches := 0
	for _, w := range spokenWords {
		if vocabulary[w] {
			matches++
		}
	}
	return float64(matches) / float64(longest)
}

func tokenize(s string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' {
			return unicode.ToLower(r)
		}
		return ' '
	}, s)
	return strings.Fields(cleaned)
}
