package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"wordtrainer/internal/domain"
	"wordtrainer/internal/repository"

	"go.uber.org/zap"
)

// NotificationSink delivers best-effort alerts to a user
type NotificationSink interface {
	RequestPermission(ctx context.Context) bool
	Send(ctx context.Context, title, body string) error
}

// MissedDayAlert returns the alert text for missed days
func MissedDayAlert(missedDays int) (title, body string) {
	title = fmt.Sprintf("You missed %s!", domain.DayCount(missedDays))
	body = fmt.Sprintf("Come back and learn today's %d words to keep your streak alive!", domain.DailyWordCount)
	return title, body
}

// StreakMonitor tracks daily visits and reports missed days
type StreakMonitor struct {
	visits repository.VisitRepository
	logger *zap.Logger
	mu     sync.Mutex
}

// NewStreakMonitor creates a new streak monitor
func NewStreakMonitor(visits repository.VisitRepository, logger *zap.Logger) *StreakMonitor {
	return &StreakMonitor{visits: visits, logger: logger}
}

// CheckIn records a visit on today's calendar day and reports how many
// days passed since the previous one. When days were missed, one alert is
// sent through sink; delivery problems never fail the check-in.
func (m *StreakMonitor) CheckIn(ctx context.Context, userID string, today time.Time, sink NotificationSink) (domain.CheckInResult, error) {
	result, err := m.record(ctx, userID, domain.DayOf(today))
	if err != nil {
		return domain.CheckInResult{}, err
	}

	if result.MissedDays > 0 && sink != nil {
		m.alert(ctx, userID, result.MissedDays, sink)
	}
	return result, nil
}

func (m *StreakMonitor) record(ctx context.Context, userID string, day domain.Day) (domain.CheckInResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	last, err := m.visits.LastVisit(ctx, userID)
	if err != nil {
		return domain.CheckInResult{}, &domain.StorageError{Op: "load last visit", Err: err}
	}

	if last == nil {
		if err := m.save(ctx, userID, day); err != nil {
			return domain.CheckInResult{}, err
		}
		return domain.CheckInResult{State: domain.NeverVisited}, nil
	}

	previous := last.Date
	missed := previous.DaysUntil(day)
	if missed <= 0 {
		// Same day, or the clock moved backwards: LastVisit never decreases.
		return domain.CheckInResult{State: domain.VisitedToday, Previous: &previous}, nil
	}

	if err := m.save(ctx, userID, day); err != nil {
		return domain.CheckInResult{}, err
	}
	return domain.CheckInResult{State: domain.MissedDays, MissedDays: missed, Previous: &previous}, nil
}

func (m *StreakMonitor) save(ctx context.Context, userID string, day domain.Day) error {
	if err := m.visits.SaveLastVisit(ctx, userID, domain.LastVisit{Date: day}); err != nil {
		return &domain.StorageError{Op: "save last visit", Err: err}
	}
	return nil
}

func (m *StreakMonitor) alert(ctx context.Context, userID string, missedDays int, sink NotificationSink) {
	if !sink.RequestPermission(ctx) {
		m.logger.Info("Notification permission denied", zap.String("user_id", userID))
		return
	}

	title, body := MissedDayAlert(missedDays)
	if err := sink.Send(ctx, title, body); err != nil {
		m.logger.Warn("Failed to deliver missed day alert",
			zap.String("user_id", userID),
			zap.Int("missed_days", missedDays),
			zap.Error(err),
		)
	}
}
