package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"wordtrainer/internal/domain"
	"wordtrainer/internal/repository"
	"wordtrainer/internal/repository/memory"
	"wordtrainer/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func seededShuffle(seed uint64) domain.Shuffler {
	return rand.New(rand.NewPCG(seed, seed+1)).Shuffle
}

func TestDailyWordSelector_TodayWords_FreshSelection(t *testing.T) {
	ctx := context.Background()
	records := repository.NewRecords(memory.NewStore())
	selector := NewDailyWordSelector(records, seededShuffle(1))
	catalog := testutil.NewTestWords(24)

	words, err := selector.TodayWords(ctx, "u1", catalog, testutil.Date(2024, 3, 1).Add(15*time.Hour))
	require.NoError(t, err)
	require.Len(t, words, domain.DailyWordCount)

	seen := make(map[int]bool)
	for _, w := range words {
		assert.False(t, seen[w.ID], "duplicate word %d", w.ID)
		seen[w.ID] = true
		assert.Contains(t, catalog, w)
	}

	stored, err := records.DailySelection(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "20240301", stored.Date.DateString())
	assert.Equal(t, words, stored.Words)
}

func TestDailyWordSelector_TodayWords_StableWithinDay(t *testing.T) {
	ctx := context.Background()
	records := repository.NewRecords(memory.NewStore())
	selector := NewDailyWordSelector(records, seededShuffle(7))
	catalog := testutil.NewTestWords(24)

	morning, err := selector.TodayWords(ctx, "u1", catalog, testutil.Date(2024, 3, 1).Add(8*time.Hour))
	require.NoError(t, err)

	reordered := make([]domain.Word, len(catalog))
	for i, w := range catalog {
		reordered[len(catalog)-1-i] = w
	}

	evening, err := selector.TodayWords(ctx, "u1", reordered[:12], testutil.Date(2024, 3, 1).Add(23*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, morning, evening)
}

func TestDailyWordSelector_TodayWords_ReplacesOnNewDay(t *testing.T) {
	ctx := context.Background()
	records := repository.NewRecords(memory.NewStore())
	selector := NewDailyWordSelector(records, seededShuffle(3))
	catalog := testutil.NewTestWords(24)

	_, err := selector.TodayWords(ctx, "u1", catalog, testutil.Date(2024, 3, 1))
	require.NoError(t, err)

	second, err := selector.TodayWords(ctx, "u1", catalog, testutil.Date(2024, 3, 2))
	require.NoError(t, err)
	assert.Len(t, second, domain.DailyWordCount)

	stored, err := records.DailySelection(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "20240302", stored.Date.DateString())
	assert.Equal(t, second, stored.Words)
}

func TestDailyWordSelector_TodayWords_DoesNotMutateCatalog(t *testing.T) {
	records := repository.NewRecords(memory.NewStore())
	selector := NewDailyWordSelector(records, seededShuffle(9))
	catalog := testutil.NewTestWords(15)
	original := testutil.NewTestWords(15)

	_, err := selector.TodayWords(context.Background(), "u1", catalog, testutil.Date(2024, 3, 1))
	require.NoError(t, err)
	assert.Equal(t, original, catalog)
}

func TestDailyWordSelector_TodayWords_Errors(t *testing.T) {
	ctx := context.Background()
	today := testutil.Date(2024, 3, 1)
	boom := fmt.Errorf("connection reset")

	tests := []struct {
		name      string
		words     int
		setup     func(m *testutil.MockSelectionRepository)
		wantError error
	}{
		{
			name:  "too few words",
			words: 9,
			setup: func(m *testutil.MockSelectionRepository) {
				m.On("DailySelection", mock.Anything, "u1").Return(nil, nil)
			},
			wantError: domain.ErrInsufficientWords,
		},
		{
			name:  "load fails",
			words: 24,
			setup: func(m *testutil.MockSelectionRepository) {
				m.On("DailySelection", mock.Anything, "u1").Return(nil, boom)
			},
			wantError: domain.ErrStorage,
		},
		{
			name:  "save fails",
			words: 24,
			setup: func(m *testutil.MockSelectionRepository) {
				m.On("DailySelection", mock.Anything, "u1").Return(nil, nil)
				m.On("SaveDailySelection", mock.Anything, "u1", mock.Anything).Return(boom)
			},
			wantError: domain.ErrStorage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(testutil.MockSelectionRepository)
			tt.setup(repo)
			selector := NewDailyWordSelector(repo, seededShuffle(1))

			words, err := selector.TodayWords(ctx, "u1", testutil.NewTestWords(tt.words), today)

			assert.ErrorIs(t, err, tt.wantError)
			assert.Nil(t, words)
			repo.AssertExpectations(t)
		})
	}
}

func TestDailyWordSelector_TodayWords_ExistingSelectionSkipsWordCountCheck(t *testing.T) {
	repo := new(testutil.MockSelectionRepository)
	today := testutil.Date(2024, 3, 1)
	stored := &domain.DailySelection{Date: domain.DayOf(today), Words: testutil.NewTestWords(10)}
	repo.On("DailySelection", mock.Anything, "u1").Return(stored, nil)

	selector := NewDailyWordSelector(repo, seededShuffle(1))
	words, err := selector.TodayWords(context.Background(), "u1", nil, today.Add(5*time.Hour))

	require.NoError(t, err)
	assert.Equal(t, stored.Words, words)
	repo.AssertNotCalled(t, "SaveDailySelection", mock.Anything, mock.Anything, mock.Anything)
}
