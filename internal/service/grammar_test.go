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

func TestGrammarService_Award(t *testing.T) {
	ctx := context.Background()
	records := repository.NewRecords(memory.NewStore())
	grammar := NewGrammarService(records, testutil.NewTestLogger())

	score, err := grammar.Total(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, score.Total)

	for i := 0; i < 3; i++ {
		_, err := grammar.Award(ctx, "u1", domain.GrammarPoints)
		require.NoError(t, err)
	}

	score, err = grammar.Total(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 30, score.Total)

	other, err := grammar.Total(ctx, "u2")
	require.NoError(t, err)
	assert.Zero(t, other.Total)
}

func TestGrammarService_Award_RejectsInvalidPoints(t *testing.T) {
	repo := new(testutil.MockGrammarRepository)
	grammar := NewGrammarService(repo, testutil.NewTestLogger())

	for _, points := range []int{0, -10, 5} {
		_, err := grammar.Award(context.Background(), "u1", points)
		assert.ErrorIs(t, err, domain.ErrValidation, "points %d", points)
	}
	repo.AssertNotCalled(t, "SaveGrammarScore", mock.Anything, mock.Anything, mock.Anything)
}

func TestGrammarService_Award_SaveFails(t *testing.T) {
	repo := new(testutil.MockGrammarRepository)
	repo.On("GrammarScore", mock.Anything, "u1").Return(domain.GrammarScore{Total: 20}, nil)
	repo.On("SaveGrammarScore", mock.Anything, "u1", domain.GrammarScore{Total: 30}).
		Return(fmt.Errorf("read only"))

	grammar := NewGrammarService(repo, testutil.NewTestLogger())
	_, err := grammar.Award(context.Background(), "u1", domain.GrammarPoints)

	assert.ErrorIs(t, err, domain.ErrStorage)
	repo.AssertExpectations(t)
}
