package service

import (
	"context"
	"fmt"
	"testing"

	"wordtrainer/internal/domain"
	"wordtrainer/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func idsUpTo(n int) []int {
	ids := make([]int, n)
	for i := range ids {
		ids[i] = i + 1
	}
	return ids
}

func TestStatsService_Summary(t *testing.T) {
	tests := []struct {
		name         string
		learned      int
		review       int
		total        int
		wantPercent  int
		wantUnlocked []bool
	}{
		{name: "nothing learned", learned: 0, review: 0, total: 24, wantPercent: 0, wantUnlocked: []bool{false, false, false}},
		{name: "first steps", learned: 5, review: 2, total: 24, wantPercent: 21, wantUnlocked: []bool{true, false, false}},
		{name: "word master", learned: 12, review: 0, total: 24, wantPercent: 50, wantUnlocked: []bool{true, true, false}},
		{name: "everything", learned: 24, review: 3, total: 24, wantPercent: 100, wantUnlocked: []bool{true, true, true}},
		{name: "empty catalog", learned: 0, review: 0, total: 0, wantPercent: 0, wantUnlocked: []bool{false, false, false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(testutil.MockProgressRepository)
			repo.On("Progress", mock.Anything, "u1").
				Return(domain.ProgressRecord{Learned: idsUpTo(tt.learned), Review: idsUpTo(tt.review)}, nil)

			stats, err := NewStatsService(NewProgressTracker(repo)).Summary(context.Background(), "u1", tt.total, 10)
			require.NoError(t, err)

			assert.Equal(t, tt.total, stats.TotalWords)
			assert.Equal(t, tt.learned, stats.LearnedWords)
			assert.Equal(t, tt.review, stats.ReviewWords)
			assert.Equal(t, 10, stats.DailyWords)
			assert.Equal(t, tt.wantPercent, stats.ProgressPercent)

			require.Len(t, stats.Achievements, 3)
			assert.Equal(t, "Vocabulary Expert", stats.Achievements[2].Name)
			assert.Equal(t, tt.total, stats.Achievements[2].Goal)
			for i, want := range tt.wantUnlocked {
				assert.Equal(t, want, stats.Achievements[i].Unlocked, stats.Achievements[i].Name)
			}
		})
	}
}

func TestStatsService_Summary_StorageError(t *testing.T) {
	repo := new(testutil.MockProgressRepository)
	repo.On("Progress", mock.Anything, "u1").Return(domain.ProgressRecord{}, fmt.Errorf("gone"))

	_, err := NewStatsService(NewProgressTracker(repo)).Summary(context.Background(), "u1", 24, 10)
	assert.ErrorIs(t, err, domain.ErrStorage)
}
