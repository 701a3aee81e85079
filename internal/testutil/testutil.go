package testutil

import (
	"fmt"
	"time"

	"wordtrainer/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestUser creates a test user
func NewTestUser(id, email, password string) domain.User {
	return domain.User{
		ID:        id,
		Name:      "Test " + id,
		Email:     email,
		Password:  password,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// NewTestWords creates n words with ids 1..n and distinct translations
func NewTestWords(n int) []domain.Word {
	words := make([]domain.Word, n)
	for i := range words {
		id := i + 1
		words[i] = domain.Word{
			ID:            id,
			English:       fmt.Sprintf("word%d", id),
			Translation:   fmt.Sprintf("soz%d", id),
			Pronunciation: fmt.Sprintf("/wɜːd%d/", id),
		}
	}
	return words
}

// Date returns midnight UTC of the given day
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
