package handler

import (
	"strings"

	"wordtrainer/internal/domain"
	"wordtrainer/internal/middleware"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	chatID := c.Chat().ID

	h.logger.Info("User started bot",
		zap.Int64("chat_id", chatID),
		zap.String("username", c.Sender().Username),
	)

	ctx, cancel := requestContext()
	defer cancel()

	session, err := h.services.Accounts.Restore(ctx, middleware.ClientID(chatID))
	if err != nil {
		h.logger.Error("Failed to restore session", zap.Error(err))
		return c.Send(msgInternalError)
	}

	h.ResetState(chatID)

	user, ok := session.User()
	if !ok {
		return c.Send("👋 Hi! I help you learn 10 new English words every day.\n\n" + msgSignInHelp)
	}
	return h.showMenu(c, user)
}

// handleHelp lists the commands
func (h *Handler) handleHelp(c tele.Context) error {
	return c.Send("Commands:\n\n" +
		"/today - today's 10 words\n" +
		"/quiz - test yourself on today's words\n" +
		"/speak - practise pronunciation\n" +
		"/grammar - grammar challenge by level\n" +
		"/stats - your progress and achievements\n" +
		"/logout - sign out\n\n" + msgSignInHelp)
}

// handleMenu shows the main menu
func (h *Handler) handleMenu(c tele.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Send(msgSignInHelp)
	}
	return h.showMenu(c, user)
}

// showMenu checks the user in and shows the main menu. Missed days trigger
// an alert through the chat notifier before the menu arrives.
func (h *Handler) showMenu(c tele.Context, user domain.User) error {
	ctx, cancel := requestContext()
	defer cancel()

	today := h.today()
	checkIn, err := h.services.Streak.CheckIn(ctx, user.ID, today, h.Notifier(middleware.ClientID(c.Chat().ID)))
	if err != nil {
		h.logger.Error("Failed to check in", zap.String("user_id", user.ID), zap.Error(err))
	}

	return h.show(c, menuText(user, checkIn, domain.DayOf(today)), mainMenuMarkup())
}

// handleRegister handles /register <name> <email> <password>
func (h *Handler) handleRegister(c tele.Context) error {
	args := c.Args()
	h.deleteCredentials(c)

	if len(args) < 3 {
		return c.Send("Usage: /register <name> <email> <password>")
	}
	name := strings.Join(args[:len(args)-2], " ")
	email, password := args[len(args)-2], args[len(args)-1]

	ctx, cancel := requestContext()
	defer cancel()

	session, err := h.services.Accounts.Restore(ctx, middleware.ClientID(c.Chat().ID))
	if err != nil {
		h.logger.Error("Failed to restore session", zap.Error(err))
		return c.Send(msgInternalError)
	}

	user, err := h.services.Accounts.Register(ctx, session, name, email, password)
	if err != nil {
		h.logger.Info("Registration rejected", zap.Int64("chat_id", c.Chat().ID), zap.Error(err))
		return c.Send(errorText(err))
	}

	h.ResetState(c.Chat().ID)
	return h.showMenu(c, user)
}

// handleLogin handles /login <email> <password>
func (h *Handler) handleLogin(c tele.Context) error {
	args := c.Args()
	h.deleteCredentials(c)

	if len(args) != 2 {
		return c.Send("Usage: /login <email> <password>")
	}

	ctx, cancel := requestContext()
	defer cancel()

	session, err := h.services.Accounts.Restore(ctx, middleware.ClientID(c.Chat().ID))
	if err != nil {
		h.logger.Error("Failed to restore session", zap.Error(err))
		return c.Send(msgInternalError)
	}

	user, err := h.services.Accounts.Login(ctx, session, args[0], args[1])
	if err != nil {
		h.logger.Info("Login rejected", zap.Int64("chat_id", c.Chat().ID), zap.Error(err))
		return c.Send(errorText(err))
	}

	h.ResetState(c.Chat().ID)
	return h.showMenu(c, user)
}

// handleLogout handles /logout
func (h *Handler) handleLogout(c tele.Context) error {
	session := middleware.SessionFrom(c)

	ctx, cancel := requestContext()
	defer cancel()

	if err := h.services.Accounts.Logout(ctx, session); err != nil {
		h.logger.Error("Failed to log out", zap.String("client_id", session.ClientID()), zap.Error(err))
		return c.Send(msgInternalError)
	}

	h.ResetState(c.Chat().ID)
	return c.Send("👋 Signed out. Your progress is saved.\n\n" + msgSignInHelp)
}

// deleteCredentials removes a command message that carried a password
func (h *Handler) deleteCredentials(c tele.Context) {
	if err := c.Delete(); err != nil {
		h.logger.Debug("Failed to delete credentials message", zap.Error(err))
	}
}
