package handler

import (
	"errors"

	"wordtrainer/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleGrammar shows the level picker with the user's total points
func (h *Handler) handleGrammar(c tele.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Send(msgSignInHelp)
	}

	ctx, cancel := requestContext()
	defer cancel()

	score, err := h.services.Grammar.Total(ctx, user.ID)
	if err != nil {
		h.logger.Error("Failed to load grammar score", zap.String("user_id", user.ID), zap.Error(err))
		return c.Send(errorText(err))
	}

	return h.show(c, grammarLevelsText(score), grammarLevelsMarkup())
}

// handleGrammarLevel starts a run over the chosen level
func (h *Handler) handleGrammarLevel(c tele.Context) error {
	return h.startGrammar(c, c.Args())
}

// handleGrammarAnswer scores a grammar answer button
func (h *Handler) handleGrammarAnswer(c tele.Context) error {
	return h.answerGrammar(c, c.Args())
}

// handleGrammarNext moves past an explanation
func (h *Handler) handleGrammarNext(c tele.Context) error {
	return h.nextGrammar(c, c.Args())
}

func (h *Handler) startGrammar(c tele.Context, args []string) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Send(msgSignInHelp)
	}
	if len(args) < 1 {
		return c.Respond(&tele.CallbackResponse{Text: "Unknown level"})
	}
	level, err := domain.ParseGrammarLevel(args[0])
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Unknown level"})
	}

	chatID := c.Chat().ID
	unlock := h.lockChat(chatID)
	defer unlock()

	quiz, err := domain.NewGrammarQuiz(level, h.catalog.Grammar(level))
	if err != nil {
		h.logger.Warn("Grammar level has no questions", zap.String("level", string(level)))
		return c.Send("There are no questions for this level yet.")
	}

	h.SetState(chatID, &domain.StateData{State: domain.StateGrammar, Grammar: quiz})
	h.logger.Info("Grammar challenge started",
		zap.String("user_id", user.ID),
		zap.String("level", string(level)),
	)

	return h.show(c, grammarQuestionText(quiz), grammarQuestionMarkup(quiz))
}

func (h *Handler) answerGrammar(c tele.Context, args []string) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Send(msgSignInHelp)
	}

	chatID := c.Chat().ID
	unlock := h.lockChat(chatID)
	defer unlock()

	values, ok := callbackInts(args, 2)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "Unknown answer"})
	}
	position, option := values[0], values[1]

	quiz, ok := h.grammarAt(chatID, position)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "This question has expired. Start a new /grammar", ShowAlert: true})
	}

	question, _ := quiz.Current()
	correct, err := quiz.Answer(option)
	if errors.Is(err, domain.ErrValidation) {
		return c.Respond(&tele.CallbackResponse{Text: "Unknown answer"})
	}
	if err != nil {
		h.ResetState(chatID)
		return c.Respond(&tele.CallbackResponse{Text: "This level is already finished"})
	}

	text := grammarFeedbackText(question, correct)
	if correct {
		ctx, cancel := requestContext()
		defer cancel()
		if _, err := h.services.Grammar.Award(ctx, user.ID, domain.GrammarPoints); err != nil {
			h.logger.Error("Failed to save grammar points", zap.String("user_id", user.ID), zap.Error(err))
			text += "\n\n⚠️ " + errorText(err)
		}
	}

	return h.show(c, text, grammarFeedbackMarkup(quiz))
}

func (h *Handler) nextGrammar(c tele.Context, args []string) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Send(msgSignInHelp)
	}

	chatID := c.Chat().ID
	unlock := h.lockChat(chatID)
	defer unlock()

	values, ok := callbackInts(args, 1)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "Unknown step"})
	}

	quiz, ok := h.grammarAt(chatID, values[0])
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "This question has expired. Start a new /grammar", ShowAlert: true})
	}

	if !quiz.Done() {
		return h.show(c, grammarQuestionText(quiz), grammarQuestionMarkup(quiz))
	}

	h.ResetState(chatID)
	h.logger.Info("Grammar challenge finished",
		zap.String("user_id", user.ID),
		zap.String("level", string(quiz.Level)),
		zap.Int("score", quiz.Score()),
	)

	ctx, cancel := requestContext()
	defer cancel()

	total, err := h.services.Grammar.Total(ctx, user.ID)
	if err != nil {
		h.logger.Error("Failed to load grammar score", zap.String("user_id", user.ID), zap.Error(err))
		return c.Send(errorText(err))
	}

	return h.show(c, grammarCompleteText(quiz, total), grammarCompleteMarkup(quiz.Level))
}

// grammarAt returns the chat's running grammar quiz if it sits at position
func (h *Handler) grammarAt(chatID int64, position int) (*domain.GrammarQuiz, bool) {
	state := h.GetState(chatID)
	if state.State != domain.StateGrammar || state.Grammar == nil || state.Grammar.Position() != position {
		return nil, false
	}
	return state.Grammar, true
}
