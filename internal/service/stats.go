package service

import (
	"context"
	"math"

	"wordtrainer/internal/domain"
)

// Achievement goals below the full-catalog milestone
const (
	firstStepsGoal = 5
	wordMasterGoal = 10
)

// StatsService builds progress summaries
type StatsService struct {
	progress *ProgressTracker
}

// NewStatsService creates a new stats service
func NewStatsService(progress *ProgressTracker) *StatsService {
	return &StatsService{progress: progress}
}

// Summary reports the user's counts, progress percent and achievements
func (s *StatsService) Summary(ctx context.Context, userID string, totalWords, dailyWords int) (domain.Stats, error) {
	progress, err := s.progress.Load(ctx, userID)
	if err != nil {
		return domain.Stats{}, err
	}

	learned := len(progress.Learned)
	stats := domain.Stats{
		TotalWords:   totalWords,
		LearnedWords: learned,
		ReviewWords:  len(progress.Review),
		DailyWords:   dailyWords,
	}
	if totalWords > 0 {
		stats.ProgressPercent = int(math.Round(float64(learned) / float64(totalWords) * 100))
	}

	stats.Achievements = []domain.Achievement{
		{Name: "First Steps", Goal: firstStepsGoal},
		{Name: "Word Master", Goal: wordMasterGoal},
		{Name: "Vocabulary Expert", Goal: totalWords},
	}
	for i := range stats.Achievements {
		goal := stats.Achievements[i].Goal
		stats.Achievements[i].Unlocked = goal > 0 && learned >= goal
	}

	return stats, nil
}
