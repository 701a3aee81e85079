package service

import (
	"context"
	"fmt"
	"testing"

	"wordtrainer/internal/domain"
	"wordtrainer/internal/repository"
	"wordtrainer/internal/repository/memory"
	"wordtrainer/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSpeakingService_Check(t *testing.T) {
	ctx := context.Background()
	records := repository.NewRecords(memory.NewStore())
	speaking := NewSpeakingService(records, testutil.NewTestLogger())
	phrase := domain.Phrase{ID: 5, Text: "Nice to meet you.", Difficulty: "easy"}

	tests := []struct {
		transcript    string
		wantGrade     domain.Grade
		wantAttempts  int
		wantSuccesses int
	}{
		{transcript: "nice to meet you", wantGrade: domain.GradeExcellent, wantAttempts: 1, wantSuccesses: 1},
		{transcript: "nice to meet", wantGrade: domain.GradeGood, wantAttempts: 2, wantSuccesses: 2},
		{transcript: "hello there", wantGrade: domain.GradeRetry, wantAttempts: 3, wantSuccesses: 2},
	}

	for _, tt := range tests {
		attempt, err := speaking.Check(ctx, "u1", tt.transcript, phrase)
		require.NoError(t, err)
		assert.Equal(t, tt.wantGrade, attempt.Grade, tt.transcript)
		assert.Equal(t, tt.wantAttempts, attempt.Stats.Attempts)
		assert.Equal(t, tt.wantSuccesses, attempt.Stats.Successes)
	}

	stats, err := speaking.Stats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.SpeakingStats{Attempts: 3, Successes: 2}, stats)
}

func TestSpeakingService_Check_SaveFails(t *testing.T) {
	repo := new(testutil.MockSpeakingRepository)
	repo.On("SpeakingStats", mock.Anything, "u1").Return(domain.SpeakingStats{}, nil)
	repo.On("SaveSpeakingStats", mock.Anything, "u1", domain.SpeakingStats{Attempts: 1, Successes: 1}).
		Return(fmt.Errorf("quota exceeded"))

	speaking := NewSpeakingService(repo, testutil.NewTestLogger())
	_, err := speaking.Check(context.Background(), "u1", "how are you", domain.Phrase{ID: 1, Text: "How are you?"})

	assert.ErrorIs(t, err, domain.ErrStorage)
	repo.AssertExpectations(t)
}
