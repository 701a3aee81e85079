package domain

import (
	"errors"
	"strings"
	"time"
)

// User is a registered learner. The password is kept in plaintext.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate checks the fields every stored user must carry
func (u User) Validate() error {
	if u.ID == "" {
		return errors.New("user id is empty")
	}
	if u.Email == "" {
		return errors.New("user email is empty")
	}
	return nil
}

// NormalizeEmail returns the form emails are stored and compared in
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UserState represents the chat's current interaction state
type UserState string

const (
	StateIdle              UserState = "idle"
	StateQuiz              UserState = "quiz"
	StateGrammar           UserState = "grammar"
	StateWaitingTranscript UserState = "waiting_transcript"
)

// StateData holds temporary data for the chat's current state
type StateData struct {
	State   UserState
	Quiz    *Quiz
	Grammar *GrammarQuiz
	Phrase  *Phrase
}
