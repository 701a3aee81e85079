package handler

import (
	"context"

	"wordtrainer/internal/middleware"
	"wordtrainer/internal/service"

	tele "gopkg.in/telebot.v3"
)

// sender is the part of *tele.Bot the notifier needs
type sender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// ChatNotifier delivers alerts as chat messages
type ChatNotifier struct {
	sender sender
	chat   tele.ChatID
}

// NewChatNotifier creates a notifier for one chat
func NewChatNotifier(s sender, chatID int64) *ChatNotifier {
	return &ChatNotifier{sender: s, chat: tele.ChatID(chatID)}
}

// RequestPermission reports whether the chat can be messaged. A chat that
// talked to the bot has granted that already; only a cancelled request
// context denies it.
func (n *ChatNotifier) RequestPermission(ctx context.Context) bool {
	return ctx.Err() == nil
}

// Send posts the alert to the chat
func (n *ChatNotifier) Send(ctx context.Context, title, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := n.sender.Send(n.chat, "🔔 "+title+"\n\n"+body)
	return err
}

// Notifier returns the notification sink of a client, nil when the client
// is not a Telegram chat
func (h *Handler) Notifier(clientID string) service.NotificationSink {
	chatID, ok := middleware.ParseClientID(clientID)
	if !ok {
		return nil
	}
	return NewChatNotifier(h.bot, chatID)
}
