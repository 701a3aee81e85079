package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"wordtrainer/internal/domain"
	"wordtrainer/internal/repository"
)

// DailyWordSelector picks and caches each user's words for the day
type DailyWordSelector struct {
	selections repository.SelectionRepository
	shuffle    domain.Shuffler
	mu         sync.Mutex
}

// NewDailyWordSelector creates a selector. A nil shuffle uses rand.Shuffle.
func NewDailyWordSelector(selections repository.SelectionRepository, shuffle domain.Shuffler) *DailyWordSelector {
	if shuffle == nil {
		shuffle = rand.Shuffle
	}
	return &DailyWordSelector{selections: selections, shuffle: shuffle}
}

// TodayWords returns the user's words for today's calendar day. A selection
// already stored for today is returned unchanged; otherwise a fresh one is
// drawn from allWords and replaces any earlier day's selection.
func (s *DailyWordSelector) TodayWords(ctx context.Context, userID string, allWords []domain.Word, today time.Time) ([]domain.Word, error) {
	day := domain.DayOf(today)

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.selections.DailySelection(ctx, userID)
	if err != nil {
		return nil, &domain.StorageError{Op: "load daily selection", Err: err}
	}
	if existing != nil && existing.Date.Equal(day) {
		return copyWords(existing.Words), nil
	}

	if len(allWords) < domain.DailyWordCount {
		return nil, fmt.Errorf("%w: need %d, have %d", domain.ErrInsufficientWords, domain.DailyWordCount, len(allWords))
	}

	shuffled := copyWords(allWords)
	s.shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	selection := domain.DailySelection{Date: day, Words: shuffled[:domain.DailyWordCount]}
	if err := s.selections.SaveDailySelection(ctx, userID, selection); err != nil {
		return nil, &domain.StorageError{Op: "save daily selection", Err: err}
	}

	return copyWords(selection.Words), nil
}

func copyWords(words []domain.Word) []domain.Word {
	out := make([]domain.Word, len(words))
	copy(out, words)
	return out
}
