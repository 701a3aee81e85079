// Package reminder nudges signed-in users who have not practised today.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wordtrainer/internal/domain"
	"wordtrainer/internal/repository"
	"wordtrainer/internal/service"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	reminderTitle = "Time to practice!"
	runTimeout    = 2 * time.Minute
)

// SinkFactory returns the notification sink of a client
type SinkFactory func(clientID string) service.NotificationSink

// Job sends daily reminders to active sessions
type Job struct {
	sessions repository.SessionRepository
	visits   repository.VisitRepository
	sinks    SinkFactory
	logger   *zap.Logger

	cron *cron.Cron
}

// NewJob creates a new reminder job
func NewJob(
	sessions repository.SessionRepository,
	visits repository.VisitRepository,
	sinks SinkFactory,
	logger *zap.Logger,
) *Job {
	return &Job{
		sessions: sessions,
		visits:   visits,
		sinks:    sinks,
		logger:   logger,
	}
}

// ReminderBody returns the reminder text
func ReminderBody() string {
	return fmt.Sprintf("Your %d words for today are waiting. Send /today to start.", domain.DailyWordCount)
}

// Run sends one reminder to every active session whose user has not checked
// in on today's calendar day. It returns the number of reminders delivered.
func (j *Job) Run(ctx context.Context, today time.Time) (int, error) {
	clients, err := j.sessions.SessionClients(ctx)
	if err != nil {
		return 0, &domain.StorageError{Op: "list sessions", Err: err}
	}

	day := domain.DayOf(today)
	sent := 0
	for _, clientID := range clients {
		if err := ctx.Err(); err != nil {
			return sent, err
		}

		due, err := j.due(ctx, clientID, day)
		if err != nil {
			j.logger.Warn("Skipping reminder", zap.String("client_id", clientID), zap.Error(err))
			continue
		}
		if !due {
			continue
		}

		if j.remind(ctx, clientID) {
			sent++
		}
	}

	j.logger.Info("Reminders sent", zap.Int("sent", sent), zap.Int("sessions", len(clients)))
	return sent, nil
}

func (j *Job) due(ctx context.Context, clientID string, day domain.Day) (bool, error) {
	user, err := j.sessions.Session(ctx, clientID)
	if errors.Is(err, domain.ErrCorruptRecord) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load session: %w", err)
	}
	if user == nil {
		return false, nil
	}

	visit, err := j.visits.LastVisit(ctx, user.ID)
	if err != nil {
		return false, fmt.Errorf("failed to load last visit: %w", err)
	}
	return visit == nil || visit.Date.Before(day), nil
}

func (j *Job) remind(ctx context.Context, clientID string) bool {
	sink := j.sinks(clientID)
	if sink == nil || !sink.RequestPermission(ctx) {
		return false
	}

	if err := sink.Send(ctx, reminderTitle, ReminderBody()); err != nil {
		j.logger.Warn("Failed to send reminder", zap.String("client_id", clientID), zap.Error(err))
		return false
	}
	return true
}

// Start schedules Run on schedule, a standard five-field cron expression
// evaluated in loc.
func (j *Job) Start(schedule string, loc *time.Location) error {
	if j.cron != nil {
		return errors.New("reminder job already started")
	}

	c := cron.New(cron.WithLocation(loc))
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()

		if _, err := j.Run(ctx, time.Now().In(loc)); err != nil {
			j.logger.Error("Reminder run failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", schedule, err)
	}

	j.cron = c
	c.Start()
	j.logger.Info("Reminder job scheduled", zap.String("schedule", schedule), zap.String("timezone", loc.String()))
	return nil
}

// Stop halts the schedule and waits for a running job to finish
func (j *Job) Stop() {
	if j.cron == nil {
		return
	}
	<-j.cron.Stop().Done()
	j.cron = nil
}
