package domain

import (
	"errors"
	"fmt"
)

// GrammarPoints is awarded for every correctly answered grammar question
const GrammarPoints = 10

// GrammarLevel names a grammar question bank
type GrammarLevel string

const (
	GrammarBeginner     GrammarLevel = "beginner"
	GrammarIntermediate GrammarLevel = "intermediate"
	GrammarAdvanced     GrammarLevel = "advanced"
)

// GrammarLevels lists the levels from easiest to hardest
var GrammarLevels = []GrammarLevel{GrammarBeginner, GrammarIntermediate, GrammarAdvanced}

// ParseGrammarLevel returns the level named s
func ParseGrammarLevel(s string) (GrammarLevel, error) {
	for _, level := range GrammarLevels {
		if string(level) == s {
			return level, nil
		}
	}
	return "", fmt.Errorf("%w: unknown grammar level %q", ErrValidation, s)
}

// Next returns the level after l, false for the hardest one
func (l GrammarLevel) Next() (GrammarLevel, bool) {
	for i, level := range GrammarLevels {
		if level == l && i+1 < len(GrammarLevels) {
			return GrammarLevels[i+1], true
		}
	}
	return "", false
}

// Title returns the display name of l
func (l GrammarLevel) Title() string {
	switch l {
	case GrammarBeginner:
		return "Beginner"
	case GrammarIntermediate:
		return "Intermediate"
	case GrammarAdvanced:
		return "Advanced"
	}
	return string(l)
}

// GrammarQuestion is a fill-in-the-gap question with one correct option
type GrammarQuestion struct {
	ID          int      `json:"id"`
	Text        string   `json:"question"`
	Options     []string `json:"options"`
	Correct     string   `json:"correct"`
	Explanation string   `json:"explanation"`
}

// Validate checks that the question has text and its answer among the options
func (q GrammarQuestion) Validate() error {
	if q.Text == "" {
		return fmt.Errorf("grammar question %d: text is empty", q.ID)
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("grammar question %d: needs at least 2 options", q.ID)
	}
	for _, opt := range q.Options {
		if opt == q.Correct {
			return nil
		}
	}
	return fmt.Errorf("grammar question %d: correct answer %q is not an option", q.ID, q.Correct)
}

// GrammarQuiz walks one level's questions in order
type GrammarQuiz struct {
	Level     GrammarLevel
	Questions []GrammarQuestion
	current   int
	score     int
}

// NewGrammarQuiz starts a run over questions of level
func NewGrammarQuiz(level GrammarLevel, questions []GrammarQuestion) (*GrammarQuiz, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: no %s grammar questions", ErrValidation, level)
	}
	qs := make([]GrammarQuestion, len(questions))
	copy(qs, questions)
	return &GrammarQuiz{Level: level, Questions: qs}, nil
}

// Current returns the question awaiting an answer
func (q *GrammarQuiz) Current() (GrammarQuestion, bool) {
	if q.Done() {
		return GrammarQuestion{}, false
	}
	return q.Questions[q.current], true
}

// Answer scores option against the current question and advances
func (q *GrammarQuiz) Answer(option int) (bool, error) {
	question, ok := q.Current()
	if !ok {
		return false, ErrQuizFinished
	}
	if option < 0 || option >= len(question.Options) {
		return false, fmt.Errorf("%w: option %d out of range", ErrValidation, option)
	}

	correct := question.Options[option] == question.Correct
	if correct {
		q.score += GrammarPoints
	}
	q.current++
	return correct, nil
}

// Position returns the zero-based index of the current question
func (q *GrammarQuiz) Position() int { return q.current }

// Done reports whether every question has been answered
func (q *GrammarQuiz) Done() bool { return q.current >= len(q.Questions) }

// Score returns the points earned in this run
func (q *GrammarQuiz) Score() int { return q.score }

// MaxScore returns the points a perfect run earns
func (q *GrammarQuiz) MaxScore() int { return len(q.Questions) * GrammarPoints }

// GrammarScore is a user's all-time grammar points
type GrammarScore struct {
	Total int `json:"total"`
}

// Validate checks that the total is a non-negative multiple of GrammarPoints
func (s GrammarScore) Validate() error {
	if s.Total < 0 || s.Total%GrammarPoints != 0 {
		return errors.New("grammar total out of range")
	}
	return nil
}
