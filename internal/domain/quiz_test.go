package domain

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWords(n int) []Word {
	words := make([]Word, n)
	for i := range words {
		words[i] = Word{
			ID:          i + 1,
			English:     fmt.Sprintf("word%d", i+1),
			Translation: fmt.Sprintf("soz%d", i+1),
		}
	}
	return words
}

func seededShuffle() Shuffler {
	return rand.New(rand.NewPCG(1, 2)).Shuffle
}

func TestNewQuiz(t *testing.T) {
	quiz, err := NewQuiz(testWords(10), QuizSize, seededShuffle())
	require.NoError(t, err)

	assert.Len(t, quiz.Questions, QuizSize)
	seen := map[int]bool{}
	for _, q := range quiz.Questions {
		assert.False(t, seen[q.Word.ID], "question repeated")
		seen[q.Word.ID] = true

		assert.Len(t, q.Options, QuizOptions)
		assert.Equal(t, q.Word.Translation, q.Options[q.Correct])

		distinct := map[string]bool{}
		for _, opt := range q.Options {
			distinct[opt] = true
		}
		assert.Len(t, distinct, QuizOptions)
	}
}

func TestNewQuiz_FewWords(t *testing.T) {
	quiz, err := NewQuiz(testWords(2), QuizSize, seededShuffle())
	require.NoError(t, err)

	assert.Len(t, quiz.Questions, 2)
	for _, q := range quiz.Questions {
		assert.Len(t, q.Options, 2)
	}
}

func TestNewQuiz_NoWords(t *testing.T) {
	_, err := NewQuiz(nil, QuizSize, seededShuffle())
	assert.True(t, errors.Is(err, ErrInsufficientWords))
}

func TestQuiz_Answer(t *testing.T) {
	quiz, err := NewQuiz(testWords(10), 3, seededShuffle())
	require.NoError(t, err)

	first, ok := quiz.Current()
	require.True(t, ok)
	correct, err := quiz.Answer(first.Correct)
	require.NoError(t, err)
	assert.True(t, correct)

	second, _ := quiz.Current()
	wrong := (second.Correct + 1) % len(second.Options)
	correct, err = quiz.Answer(wrong)
	require.NoError(t, err)
	assert.False(t, correct)

	_, err = quiz.Answer(99)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, 2, quiz.Position())

	third, _ := quiz.Current()
	_, err = quiz.Answer(third.Correct)
	require.NoError(t, err)

	assert.True(t, quiz.Done())
	assert.Equal(t, 2, quiz.Score())

	_, err = quiz.Answer(0)
	assert.ErrorIs(t, err, ErrQuizFinished)
}
