package service

import (
	"context"
	"sync"

	"wordtrainer/internal/domain"
	"wordtrainer/internal/repository"
)

// ProgressTracker maintains learned and review sets
type ProgressTracker struct {
	progress repository.ProgressRepository
	mu       sync.Mutex
}

// NewProgressTracker creates a new progress tracker
func NewProgressTracker(progress repository.ProgressRepository) *ProgressTracker {
	return &ProgressTracker{progress: progress}
}

// Load returns the user's progress, empty when nothing was saved yet
func (t *ProgressTracker) Load(ctx context.Context, userID string) (domain.ProgressRecord, error) {
	progress, err := t.progress.Progress(ctx, userID)
	if err != nil {
		return domain.ProgressRecord{}, &domain.StorageError{Op: "load progress", Err: err}
	}
	return progress, nil
}

// MarkLearned adds wordID to the learned set
func (t *ProgressTracker) MarkLearned(ctx context.Context, userID string, wordID int) (domain.ProgressRecord, error) {
	return t.update(ctx, userID, func(p *domain.ProgressRecord) bool {
		return p.AddLearned(wordID)
	})
}

// MarkForReview adds wordID to the review set
func (t *ProgressTracker) MarkForReview(ctx context.Context, userID string, wordID int) (domain.ProgressRecord, error) {
	return t.update(ctx, userID, func(p *domain.ProgressRecord) bool {
		return p.AddReview(wordID)
	})
}

// update applies change and persists only when it reports a modification
func (t *ProgressTracker) update(ctx context.Context, userID string, change func(*domain.ProgressRecord) bool) (domain.ProgressRecord, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	progress, err := t.Load(ctx, userID)
	if err != nil {
		return domain.ProgressRecord{}, err
	}

	if !change(&progress) {
		return progress, nil
	}

	if err := t.progress.SaveProgress(ctx, userID, progress); err != nil {
		return domain.ProgressRecord{}, &domain.StorageError{Op: "save progress", Err: err}
	}
	return progress, nil
}
