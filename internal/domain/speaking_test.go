package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		spoken   string
		target   string
		expected float64
	}{
		{name: "exact match", spoken: "How are you?", target: "How are you?", expected: 1},
		{name: "case and punctuation ignored", spoken: "how are you", target: "How are you?", expected: 1},
		{name: "partial match", spoken: "how you", target: "How are you?", expected: 2.0 / 3.0},
		{name: "extra words lower the score", spoken: "how are you my friend", target: "How are you?", expected: 3.0 / 5.0},
		{name: "nothing in common", spoken: "good night", target: "Thank you very much.", expected: 0},
		{name: "empty transcript", spoken: "", target: "I like coffee.", expected: 0},
		{name: "both empty", spoken: "  ", target: "", expected: 0},
		{name: "apostrophes kept", spoken: "I'm fine", target: "I'm fine.", expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Similarity(tt.spoken, tt.target), 1e-9)
		})
	}
}

func TestGradeFor(t *testing.T) {
	tests := []struct {
		similarity float64
		expected   Grade
		success    bool
	}{
		{similarity: 1, expected: GradeExcellent, success: true},
		{similarity: 0.81, expected: GradeExcellent, success: true},
		{similarity: 0.8, expected: GradeGood, success: true},
		{similarity: 0.61, expected: GradeGood, success: true},
		{similarity: 0.6, expected: GradeRetry, success: false},
		{similarity: 0, expected: GradeRetry, success: false},
	}

	for _, tt := range tests {
		grade := GradeFor(tt.similarity)
		assert.Equal(t, tt.expected, grade, "similarity %v", tt.similarity)
		assert.Equal(t, tt.success, grade.Success())
		assert.NotEmpty(t, grade.Message())
	}
}
