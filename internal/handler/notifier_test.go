package handler

import (
	"context"
	"fmt"
	"testing"

	"wordtrainer/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"
)

type fakeSender struct {
	to   []tele.Recipient
	what []interface{}
	err  error
}

func (f *fakeSender) Send(to tele.Recipient, what interface{}, _ ...interface{}) (*tele.Message, error) {
	f.to = append(f.to, to)
	f.what = append(f.what, what)
	return &tele.Message{}, f.err
}

func TestChatNotifier_Send(t *testing.T) {
	sender := &fakeSender{}
	notifier := NewChatNotifier(sender, 42)
	title, body := service.MissedDayAlert(2)

	require.True(t, notifier.RequestPermission(context.Background()))
	require.NoError(t, notifier.Send(context.Background(), title, body))

	require.Len(t, sender.to, 1)
	assert.Equal(t, "42", sender.to[0].Recipient())
	assert.Equal(t, "🔔 You missed 2 days!\n\nCome back and learn today's 10 words to keep your streak alive!", sender.what[0])
}

func TestChatNotifier_Errors(t *testing.T) {
	sender := &fakeSender{err: fmt.Errorf("telegram: bot was blocked by the user (403)")}
	notifier := NewChatNotifier(sender, 42)

	assert.Error(t, notifier.Send(context.Background(), "t", "b"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, notifier.RequestPermission(ctx))
	assert.ErrorIs(t, notifier.Send(ctx, "t", "b"), context.Canceled)
	assert.Len(t, sender.to, 1)
}

func TestHandler_Notifier(t *testing.T) {
	h := &Handler{}

	assert.NotNil(t, h.Notifier("tg:42"))
	assert.Nil(t, h.Notifier("web:42"))
	assert.Nil(t, h.Notifier("tg:abc"))
}
