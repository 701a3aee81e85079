package handler

import (
	"strconv"
	"strings"
	"unicode"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// parseCallback splits raw callback data of the form "\funique|a|b" into
// the unique id and its arguments
func parseCallback(data string) (string, []string) {
	parts := strings.Split(cleanCallbackData(data), "|")
	return parts[0], parts[1:]
}

// callbackInts parses callback arguments as integers
func callbackInts(args []string, n int) ([]int, bool) {
	if len(args) < n {
		return nil, false
	}
	values := make([]int, n)
	for i := 0; i < n; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(args[i]))
		if err != nil {
			return nil, false
		}
		values[i] = v
	}
	return values, true
}

// handleEditError handles errors from c.Edit(). An unmodified message only
// needs the callback acknowledged; any other error is returned so the caller
// can send a new message instead.
func (h *Handler) handleEditError(err error, c tele.Context) error {
	if err == nil {
		return nil
	}

	if strings.Contains(err.Error(), "message is not modified") {
		h.logger.Debug("Message already up to date, acknowledging",
			zap.Int64("chat_id", c.Chat().ID),
			zap.String("callback_id", c.Callback().ID),
		)
		_ = c.Respond()
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("chat_id", c.Chat().ID),
		zap.String("callback_id", c.Callback().ID),
	)
	// Always acknowledge callback before sending new message
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// show edits the callback's message, or sends a new one for commands
func (h *Handler) show(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	if c.Callback() == nil || c.Message() == nil {
		return c.Send(text, markup)
	}

	if err := c.Edit(text, markup); err != nil {
		if handleErr := h.handleEditError(err, c); handleErr == nil {
			return nil
		}
		return c.Send(text, markup)
	}
	return c.Respond()
}

// handleCallback handles callbacks no button endpoint claimed
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	unique, args := parseCallback(callback.Data)
	if callback.Unique != "" {
		unique = callback.Unique
		args = c.Args()
	}

	h.logger.Debug("handleCallback: Processing callback",
		zap.String("unique", unique),
		zap.Strings("args", args),
		zap.String("id", callback.ID),
		zap.Int64("chat_id", c.Chat().ID),
	)

	switch unique {
	case btnToday.Unique:
		return h.handleToday(c)
	case btnQuiz.Unique:
		return h.handleQuiz(c)
	case btnSpeak.Unique:
		return h.handleSpeak(c)
	case btnGrammar.Unique:
		return h.handleGrammar(c)
	case btnStats.Unique:
		return h.handleStats(c)
	case btnCancel.Unique:
		return h.handleCancel(c)
	case btnMainMenu.Unique:
		return h.handleMenu(c)
	case btnLearned.Unique:
		return h.markWord(c, args, true)
	case btnReview.Unique:
		return h.markWord(c, args, false)
	case btnAnswer.Unique:
		return h.answer(c, args)
	case btnGrammarLevel.Unique:
		return h.startGrammar(c, args)
	case btnGrammarAnswer.Unique:
		return h.answerGrammar(c, args)
	case btnGrammarNext.Unique:
		return h.nextGrammar(c, args)
	}

	h.logger.Warn("Unhandled callback",
		zap.String("data", cleanCallbackData(callback.Data)),
		zap.String("unique", callback.Unique),
	)
	return c.Respond()
}

// handleCancel cancels the current activity and shows the menu
func (h *Handler) handleCancel(c tele.Context) error {
	h.ResetState(c.Chat().ID)
	return h.handleMenu(c)
}
