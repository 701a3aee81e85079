package repository

import (
	"context"

	"wordtrainer/internal/domain"
)

// Store is a durable key-value store. Get returns domain.ErrNotFound for
// a missing key; Delete of a missing key is not an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// UserRepository defines user collection operations
type UserRepository interface {
	Users(ctx context.Context) (map[string]domain.User, error)
	SaveUsers(ctx context.Context, users map[string]domain.User) error
}

// SessionRepository defines active-session marker operations
type SessionRepository interface {
	Session(ctx context.Context, clientID string) (*domain.User, error)
	SaveSession(ctx context.Context, clientID string, user domain.User) error
	ClearSession(ctx context.Context, clientID string) error
	SessionClients(ctx context.Context) ([]string, error)
}

// ProgressRepository defines learned/review progress operations
type ProgressRepository interface {
	Progress(ctx context.Context, userID string) (domain.ProgressRecord, error)
	SaveProgress(ctx context.Context, userID string, progress domain.ProgressRecord) error
}

// SelectionRepository defines daily word selection operations
type SelectionRepository interface {
	DailySelection(ctx context.Context, userID string) (*domain.DailySelection, error)
	SaveDailySelection(ctx context.Context, userID string, selection domain.DailySelection) error
}

// VisitRepository defines last-visit operations
type VisitRepository interface {
	LastVisit(ctx context.Context, userID string) (*domain.LastVisit, error)
	SaveLastVisit(ctx context.Context, userID string, visit domain.LastVisit) error
}

// SpeakingRepository defines pronunciation counter operations
type SpeakingRepository interface {
	SpeakingStats(ctx context.Context, userID string) (domain.SpeakingStats, error)
	SaveSpeakingStats(ctx context.Context, userID string, stats domain.SpeakingStats) error
}

// GrammarRepository defines grammar point operations
type GrammarRepository interface {
	GrammarScore(ctx context.Context, userID string) (domain.GrammarScore, error)
	SaveGrammarScore(ctx context.Context, userID string, score domain.GrammarScore) error
}
