package handler

import (
	"strings"

	"wordtrainer/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleSpeak offers a random phrase to pronounce
func (h *Handler) handleSpeak(c tele.Context) error {
	if len(h.catalog.Phrases) == 0 {
		return c.Send("There are no practice phrases yet.")
	}

	chatID := c.Chat().ID
	unlock := h.lockChat(chatID)
	defer unlock()

	phrase := h.catalog.Phrases[h.pick(len(h.catalog.Phrases))]
	h.SetState(chatID, &domain.StateData{State: domain.StateWaitingTranscript, Phrase: &phrase})

	cancelMarkup := &tele.ReplyMarkup{}
	cancelMarkup.Inline(cancelMarkup.Row(btnCancel))
	return h.show(c, phraseText(phrase), cancelMarkup)
}

// handleText handles all text messages based on state
func (h *Handler) handleText(c tele.Context) error {
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	user, ok := currentUser(c)
	if !ok {
		return c.Send(msgSignInHelp)
	}

	chatID := c.Chat().ID
	unlock := h.lockChat(chatID)
	defer unlock()

	state := h.GetState(chatID)
	if state.State != domain.StateWaitingTranscript || state.Phrase == nil {
		return c.Send("Choose an action:", mainMenuMarkup())
	}

	ctx, cancel := requestContext()
	defer cancel()

	attempt, err := h.services.Speaking.Check(ctx, user.ID, text, *state.Phrase)
	if err != nil {
		h.logger.Error("Failed to record speaking attempt", zap.String("user_id", user.ID), zap.Error(err))
		return c.Send(errorText(err))
	}

	h.ResetState(chatID)

	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnSpeak), markup.Row(btnMainMenu))
	return c.Send(attemptText(attempt), markup)
}
