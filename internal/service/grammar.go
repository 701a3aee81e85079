package service

import (
	"context"
	"fmt"
	"sync"

	"wordtrainer/internal/domain"
	"wordtrainer/internal/repository"

	"go.uber.org/zap"
)

// GrammarService keeps each user's all-time grammar points
type GrammarService struct {
	scores repository.GrammarRepository
	logger *zap.Logger
	mu     sync.Mutex
}

// NewGrammarService creates a new grammar service
func NewGrammarService(scores repository.GrammarRepository, logger *zap.Logger) *GrammarService {
	return &GrammarService{scores: scores, logger: logger}
}

// Total returns the user's grammar points
func (s *GrammarService) Total(ctx context.Context, userID string) (domain.GrammarScore, error) {
	score, err := s.scores.GrammarScore(ctx, userID)
	if err != nil {
		return domain.GrammarScore{}, &domain.StorageError{Op: "load grammar score", Err: err}
	}
	return score, nil
}

// Award adds points to the user's total and persists it
func (s *GrammarService) Award(ctx context.Context, userID string, points int) (domain.GrammarScore, error) {
	if points <= 0 || points%domain.GrammarPoints != 0 {
		return domain.GrammarScore{}, fmt.Errorf("%w: cannot award %d grammar points", domain.ErrValidation, points)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	score, err := s.Total(ctx, userID)
	if err != nil {
		return domain.GrammarScore{}, err
	}

	score.Total += points
	if err := s.scores.SaveGrammarScore(ctx, userID, score); err != nil {
		return domain.GrammarScore{}, &domain.StorageError{Op: "save grammar score", Err: err}
	}

	s.logger.Debug("Grammar points awarded",
		zap.String("user_id", userID),
		zap.Int("points", points),
		zap.Int("total", score.Total),
	)
	return score, nil
}
