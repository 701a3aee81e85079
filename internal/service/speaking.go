package service

import (
	"context"
	"sync"

	"wordtrainer/internal/domain"
	"wordtrainer/internal/repository"

	"go.uber.org/zap"
)

// Attempt is the graded result of one pronunciation try
type Attempt struct {
	Similarity float64
	Grade      domain.Grade
	Stats      domain.SpeakingStats
}

// SpeakingService scores transcripts against practice phrases
type SpeakingService struct {
	stats  repository.SpeakingRepository
	logger *zap.Logger
	mu     sync.Mutex
}

// NewSpeakingService creates a new speaking service
func NewSpeakingService(stats repository.SpeakingRepository, logger *zap.Logger) *SpeakingService {
	return &SpeakingService{stats: stats, logger: logger}
}

// Stats returns the user's attempt counters
func (s *SpeakingService) Stats(ctx context.Context, userID string) (domain.SpeakingStats, error) {
	stats, err := s.stats.SpeakingStats(ctx, userID)
	if err != nil {
		return domain.SpeakingStats{}, &domain.StorageError{Op: "load speaking stats", Err: err}
	}
	return stats, nil
}

// Check grades transcript against phrase and records the attempt
func (s *SpeakingService) Check(ctx context.Context, userID, transcript string, phrase domain.Phrase) (Attempt, error) {
	similarity := domain.Similarity(transcript, phrase.Text)
	grade := domain.GradeFor(similarity)

	s.mu.Lock()
	defer s.mu.Unlock()

	stats, err := s.Stats(ctx, userID)
	if err != nil {
		return Attempt{}, err
	}

	stats.Attempts++
	if grade.Success() {
		stats.Successes++
	}

	if err := s.stats.SaveSpeakingStats(ctx, userID, stats); err != nil {
		return Attempt{}, &domain.StorageError{Op: "save speaking stats", Err: err}
	}

	s.logger.Debug("Pronunciation attempt graded",
		zap.String("user_id", userID),
		zap.Int("phrase_id", phrase.ID),
		zap.Float64("similarity", similarity),
	)

	return Attempt{Similarity: similarity, Grade: grade, Stats: stats}, nil
}
