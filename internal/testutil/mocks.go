package testutil

import (
	"context"

	"wordtrainer/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Users(ctx context.Context) (map[string]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUsers(ctx context.Context, users map[string]domain.User) error {
	args := m.Called(ctx, users)
	return args.Error(0)
}

// MockSessionRepository is a mock for SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Session(ctx context.Context, clientID string) (*domain.User, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockSessionRepository) SaveSession(ctx context.Context, clientID string, user domain.User) error {
	args := m.Called(ctx, clientID, user)
	return args.Error(0)
}

func (m *MockSessionRepository) ClearSession(ctx context.Context, clientID string) error {
	args := m.Called(ctx, clientID)
	return args.Error(0)
}

func (m *MockSessionRepository) SessionClients(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockProgressRepository is a mock for ProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) Progress(ctx context.Context, userID string) (domain.ProgressRecord, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.ProgressRecord), args.Error(1)
}

func (m *MockProgressRepository) SaveProgress(ctx context.Context, userID string, progress domain.ProgressRecord) error {
	args := m.Called(ctx, userID, progress)
	return args.Error(0)
}

// MockSelectionRepository is a mock for SelectionRepository
type MockSelectionRepository struct {
	mock.Mock
}

func (m *MockSelectionRepository) DailySelection(ctx context.Context, userID string) (*domain.DailySelection, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailySelection), args.Error(1)
}

func (m *MockSelectionRepository) SaveDailySelection(ctx context.Context, userID string, selection domain.DailySelection) error {
	args := m.Called(ctx, userID, selection)
	return args.Error(0)
}

// MockVisitRepository is a mock for VisitRepository
type MockVisitRepository struct {
	mock.Mock
}

func (m *MockVisitRepository) LastVisit(ctx context.Context, userID string) (*domain.LastVisit, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LastVisit), args.Error(1)
}

func (m *MockVisitRepository) SaveLastVisit(ctx context.Context, userID string, visit domain.LastVisit) error {
	args := m.Called(ctx, userID, visit)
	return args.Error(0)
}

// MockSpeakingRepository is a mock for SpeakingRepository
type MockSpeakingRepository struct {
	mock.Mock
}

func (m *MockSpeakingRepository) SpeakingStats(ctx context.Context, userID string) (domain.SpeakingStats, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.SpeakingStats), args.Error(1)
}

func (m *MockSpeakingRepository) SaveSpeakingStats(ctx context.Context, userID string, stats domain.SpeakingStats) error {
	args := m.Called(ctx, userID, stats)
	return args.Error(0)
}

// MockGrammarRepository is a mock for GrammarRepository
type MockGrammarRepository struct {
	mock.Mock
}

func (m *MockGrammarRepository) GrammarScore(ctx context.Context, userID string) (domain.GrammarScore, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.GrammarScore), args.Error(1)
}

func (m *MockGrammarRepository) SaveGrammarScore(ctx context.Context, userID string, score domain.GrammarScore) error {
	args := m.Called(ctx, userID, score)
	return args.Error(0)
}

// MockNotificationSink is a mock for service.NotificationSink
type MockNotificationSink struct {
	mock.Mock
}

func (m *MockNotificationSink) RequestPermission(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

func (m *MockNotificationSink) Send(ctx context.Context, title, body string) error {
	args := m.Called(ctx, title, body)
	return args.Error(0)
}
