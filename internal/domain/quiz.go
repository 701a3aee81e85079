package domain

import (
	"errors"
	"fmt"
)

const (
	// QuizSize is the number of questions in a quiz
	QuizSize = 5
	// QuizOptions is the maximum number of choices per question
	QuizOptions = 4
)

// ErrQuizFinished is returned when answering a quiz with no questions left
var ErrQuizFinished = errors.New("quiz already finished")

// Shuffler permutes n elements in place through swap, in the shape of rand.Shuffle
type Shuffler func(n int, swap func(i, j int))

// Question asks for the translation of Word
type Question struct {
	Word    Word
	Options []string
	Correct int
}

// Quiz is a multiple-choice translation test
type Quiz struct {
	Questions []Question
	current   int
	score     int
}

// NewQuiz draws up to size questions from words. Each question offers the
// correct translation plus up to QuizOptions-1 distinct distractors.
func NewQuiz(words []Word, size int, shuffle Shuffler) (*Quiz, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("quiz: %w", ErrInsufficientWords)
	}

	pool := make([]Word, len(words))
	copy(pool, words)
	shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	if size > len(pool) {
		size = len(pool)
	}

	q := &Quiz{Questions: make([]Question, 0, size)}
	for _, w := range pool[:size] {
		q.Questions = append(q.Questions, newQuestion(w, words, shuffle))
	}
	return q, nil
}

func newQuestion(word Word, words []Word, shuffle Shuffler) Question {
	seen := map[string]bool{word.Translation: true}
	var distractors []string
	for _, w := range words {
		if !seen[w.Translation] {
			seen[w.Translation] = true
			distractors = append(distractors, w.Translation)
		}
	}
	shuffle(len(distractors), func(i, j int) {
		distractors[i], distractors[j] = distractors[j], distractors[i]
	})
	if len(distractors) > QuizOptions-1 {
		distractors = distractors[:QuizOptions-1]
	}

	options := append([]string{word.Translation}, distractors...)
	shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })

	correct := 0
	for i, opt := range options {
		if opt == word.Translation {
			correct = i
			break
		}
	}
	return Question{Word: word, Options: options, Correct: correct}
}

// Current returns the question awaiting an answer
func (q *Quiz) Current() (Question, bool) {
	if q.Done() {
		return Question{}, false
	}
	return q.Questions[q.current], true
}

// Answer scores option against the current question and advances
func (q *Quiz) Answer(option int) (bool, error) {
	question, ok := q.Current()
	if !ok {
		return false, ErrQuizFinished
	}
	if option < 0 || option >= len(question.Options) {
		return false, fmt.Errorf("%w: option %d out of range", ErrValidation, option)
	}

	correct := option == question.Correct
	if correct {
		q.score++
	}
	q.current++
	return correct, nil
}

// Position returns the zero-based index of the current question
func (q *Quiz) Position() int { return q.current }

// Done reports whether every question has been answered
func (q *Quiz) Done() bool { return q.current >= len(q.Questions) }

// Score returns the number of correct answers so far
func (q *Quiz) Score() int { return q.score }
