package reminder

import (
	"context"
	"fmt"
	"testing"
	"time"

	"wordtrainer/internal/domain"
	"wordtrainer/internal/repository"
	"wordtrainer/internal/repository/memory"
	"wordtrainer/internal/service"
	"wordtrainer/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestJob_Run(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	records := repository.NewRecords(store)
	today := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

	// tg:1 visited yesterday, tg:2 already today, tg:3 never, tg:4 holds a corrupt marker
	users := map[string]domain.User{
		"tg:1": testutil.NewTestUser("u1", "a@b.com", "abc123"),
		"tg:2": testutil.NewTestUser("u2", "c@d.com", "abc123"),
		"tg:3": testutil.NewTestUser("u3", "e@f.com", "abc123"),
	}
	for clientID, user := range users {
		require.NoError(t, records.SaveSession(ctx, clientID, user))
	}
	require.NoError(t, store.Put(ctx, repository.SessionKey("tg:4"), []byte("garbage")))
	require.NoError(t, records.SaveLastVisit(ctx, "u1", domain.LastVisit{Date: domain.DayOf(today.AddDate(0, 0, -1))}))
	require.NoError(t, records.SaveLastVisit(ctx, "u2", domain.LastVisit{Date: domain.DayOf(today)}))

	sinks := map[string]*testutil.MockNotificationSink{}
	for _, clientID := range []string{"tg:1", "tg:3"} {
		sink := new(testutil.MockNotificationSink)
		sink.On("RequestPermission", mock.Anything).Return(true).Once()
		sink.On("Send", mock.Anything, "Time to practice!", ReminderBody()).Return(nil).Once()
		sinks[clientID] = sink
	}

	job := NewJob(records, records, func(clientID string) service.NotificationSink {
		sink, ok := sinks[clientID]
		if !ok {
			t.Fatalf("unexpected reminder for %s", clientID)
		}
		return sink
	}, testutil.NewTestLogger())

	sent, err := job.Run(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, 2, sent)

	for _, sink := range sinks {
		sink.AssertExpectations(t)
	}
}

func TestJob_Run_DeliveryFailures(t *testing.T) {
	tests := []struct {
		name  string
		setup func(s *testutil.MockNotificationSink)
	}{
		{
			name: "permission denied",
			setup: func(s *testutil.MockNotificationSink) {
				s.On("RequestPermission", mock.Anything).Return(false)
			},
		},
		{
			name: "send fails",
			setup: func(s *testutil.MockNotificationSink) {
				s.On("RequestPermission", mock.Anything).Return(true)
				s.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(fmt.Errorf("bot was blocked"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			records := repository.NewRecords(memory.NewStore())
			require.NoError(t, records.SaveSession(ctx, "tg:1", testutil.NewTestUser("u1", "a@b.com", "abc123")))

			sink := new(testutil.MockNotificationSink)
			tt.setup(sink)
			job := NewJob(records, records, func(string) service.NotificationSink { return sink }, testutil.NewTestLogger())

			sent, err := job.Run(ctx, time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC))
			require.NoError(t, err)
			assert.Equal(t, 0, sent)
			sink.AssertExpectations(t)
		})
	}
}

func TestJob_Run_ListFails(t *testing.T) {
	sessions := new(testutil.MockSessionRepository)
	sessions.On("SessionClients", mock.Anything).Return(nil, fmt.Errorf("redis down"))

	job := NewJob(sessions, new(testutil.MockVisitRepository), nil, testutil.NewTestLogger())
	_, err := job.Run(context.Background(), time.Now())

	assert.ErrorIs(t, err, domain.ErrStorage)
}

func TestJob_Start(t *testing.T) {
	records := repository.NewRecords(memory.NewStore())
	job := NewJob(records, records, nil, testutil.NewTestLogger())

	err := job.Start("not a schedule", time.UTC)
	assert.Error(t, err)

	require.NoError(t, job.Start("0 9 * * *", time.UTC))
	assert.Error(t, job.Start("0 9 * * *", time.UTC))
	job.Stop()
	job.Stop()
}
