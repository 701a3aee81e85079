package handler

import (
	"wordtrainer/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// todayWords returns the user's selection for the current day
func (h *Handler) todayWords(user domain.User) ([]domain.Word, error) {
	ctx, cancel := requestContext()
	defer cancel()
	return h.services.Daily.TodayWords(ctx, user.ID, h.catalog.Words, h.today())
}

// handleToday shows today's words with learned/review buttons
func (h *Handler) handleToday(c tele.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Send(msgSignInHelp)
	}

	words, err := h.todayWords(user)
	if err != nil {
		h.logger.Error("Failed to select today's words", zap.String("user_id", user.ID), zap.Error(err))
		return c.Send(errorText(err))
	}

	ctx, cancel := requestContext()
	defer cancel()

	progress, err := h.services.Progress.Load(ctx, user.ID)
	if err != nil {
		h.logger.Error("Failed to load progress", zap.String("user_id", user.ID), zap.Error(err))
		return c.Send(errorText(err))
	}

	return h.show(c, todayText(words, progress), todayMarkup(words, progress))
}

// handleLearned marks a word as learned
func (h *Handler) handleLearned(c tele.Context) error {
	return h.markWord(c, c.Args(), true)
}

// handleReview marks a word for review
func (h *Handler) handleReview(c tele.Context) error {
	return h.markWord(c, c.Args(), false)
}

// markWord records a mark on one of today's words and redraws the list
func (h *Handler) markWord(c tele.Context, args []string, learned bool) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "Please sign in first", ShowAlert: true})
	}

	ids, ok := callbackInts(args, 1)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "Unknown word"})
	}
	wordID := ids[0]

	words, err := h.todayWords(user)
	if err != nil {
		h.logger.Error("Failed to select today's words", zap.String("user_id", user.ID), zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: errorText(err)})
	}

	if !containsWord(words, wordID) {
		// Buttons from an earlier day's message
		return c.Respond(&tele.CallbackResponse{Text: "This word is not in today's list", ShowAlert: true})
	}

	ctx, cancel := requestContext()
	defer cancel()

	var progress domain.ProgressRecord
	if learned {
		progress, err = h.services.Progress.MarkLearned(ctx, user.ID, wordID)
	} else {
		progress, err = h.services.Progress.MarkForReview(ctx, user.ID, wordID)
	}
	if err != nil {
		h.logger.Error("Failed to mark word",
			zap.String("user_id", user.ID),
			zap.Int("word_id", wordID),
			zap.Bool("learned", learned),
			zap.Error(err),
		)
		return c.Respond(&tele.CallbackResponse{Text: errorText(err)})
	}

	return h.show(c, todayText(words, progress), todayMarkup(words, progress))
}

func containsWord(words []domain.Word, id int) bool {
	for _, w := range words {
		if w.ID == id {
			return true
		}
	}
	return false
}

// handleStats shows the statistics summary
func (h *Handler) handleStats(c tele.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Send(msgSignInHelp)
	}

	dailyWords := 0
	if words, err := h.todayWords(user); err == nil {
		dailyWords = len(words)
	} else {
		h.logger.Warn("Failed to select today's words for stats", zap.String("user_id", user.ID), zap.Error(err))
	}

	ctx, cancel := requestContext()
	defer cancel()

	stats, err := h.services.Stats.Summary(ctx, user.ID, len(h.catalog.Words), dailyWords)
	if err != nil {
		h.logger.Error("Failed to build stats", zap.String("user_id", user.ID), zap.Error(err))
		return c.Send(errorText(err))
	}

	speaking, err := h.services.Speaking.Stats(ctx, user.ID)
	if err != nil {
		h.logger.Error("Failed to load speaking stats", zap.String("user_id", user.ID), zap.Error(err))
		return c.Send(errorText(err))
	}

	grammar, err := h.services.Grammar.Total(ctx, user.ID)
	if err != nil {
		h.logger.Error("Failed to load grammar score", zap.String("user_id", user.ID), zap.Error(err))
		return c.Send(errorText(err))
	}

	return h.show(c, statsText(stats, speaking, grammar), backMarkup())
}
