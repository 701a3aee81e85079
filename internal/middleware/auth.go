package middleware

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"wordtrainer/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	sessionKey     = "session"
	restoreTimeout = 5 * time.Second
)

// ClientID returns the client identifier of the chat an update came from
func ClientID(chatID int64) string {
	return fmt.Sprintf("tg:%d", chatID)
}

// SessionFrom returns the session stored by RequireSession, nil if absent
func SessionFrom(c tele.Context) *service.Session {
	session, _ := c.Get(sessionKey).(*service.Session)
	return session
}

// RequireSession restores the chat's session and stops updates from chats
// without an active one
func RequireSession(accounts *service.AccountService, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Chat() == nil {
				return nil
			}

			ctx, cancel := context.WithTimeout(context.Background(), restoreTimeout)
			defer cancel()

			session, err := accounts.Restore(ctx, ClientID(c.Chat().ID))
			if err != nil {
				logger.Error("Failed to restore session in middleware",
					zap.Int64("chat_id", c.Chat().ID),
					zap.Error(err),
				)
				return c.Send("Something went wrong. Please try again later.")
			}

			if !session.Active() {
				if c.Callback() != nil {
					return c.Respond(&tele.CallbackResponse{Text: "Please sign in first", ShowAlert: true})
				}
				return c.Send("Please sign in first:\n/register <name> <email> <password>\n/login <email> <password>")
			}

			c.Set(sessionKey, session)
			return next(c)
		}
	}
}

// ParseClientID returns the chat id encoded by ClientID
func ParseClientID(clientID string) (int64, bool) {
	raw, ok := strings.CutPrefix(clientID, "tg:")
	if !ok {
		return 0, false
	}
	chatID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return chatID, true
}
