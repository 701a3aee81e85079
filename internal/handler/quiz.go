package handler

import (
	"errors"

	"wordtrainer/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleQuiz starts a quiz on today's words
func (h *Handler) handleQuiz(c tele.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Send(msgSignInHelp)
	}

	chatID := c.Chat().ID
	unlock := h.lockChat(chatID)
	defer unlock()

	words, err := h.todayWords(user)
	if err != nil {
		h.logger.Error("Failed to select today's words", zap.String("user_id", user.ID), zap.Error(err))
		return c.Send(errorText(err))
	}

	quiz, err := domain.NewQuiz(words, domain.QuizSize, h.shuffle)
	if err != nil {
		return c.Send(errorText(err))
	}

	h.SetState(chatID, &domain.StateData{State: domain.StateQuiz, Quiz: quiz})
	h.logger.Info("Quiz started", zap.String("user_id", user.ID), zap.Int("questions", len(quiz.Questions)))

	return h.show(c, questionText(quiz), questionMarkup(quiz))
}

// handleAnswer scores a quiz answer button
func (h *Handler) handleAnswer(c tele.Context) error {
	return h.answer(c, c.Args())
}

func (h *Handler) answer(c tele.Context, args []string) error {
	chatID := c.Chat().ID
	unlock := h.lockChat(chatID)
	defer unlock()

	values, ok := callbackInts(args, 2)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "Unknown answer"})
	}
	position, option := values[0], values[1]

	state := h.GetState(chatID)
	if state.State != domain.StateQuiz || state.Quiz == nil || state.Quiz.Position() != position {
		return c.Respond(&tele.CallbackResponse{Text: "This question has expired. Start a new /quiz", ShowAlert: true})
	}

	quiz := state.Quiz
	question, _ := quiz.Current()
	correct, err := quiz.Answer(option)
	if errors.Is(err, domain.ErrValidation) {
		return c.Respond(&tele.CallbackResponse{Text: "Unknown answer"})
	}
	if err != nil {
		h.ResetState(chatID)
		return c.Respond(&tele.CallbackResponse{Text: "The quiz is already finished"})
	}

	feedback := "✅ Correct!"
	if !correct {
		feedback = "❌ Wrong. Correct answer: " + question.Options[question.Correct]
	}

	if quiz.Done() {
		h.ResetState(chatID)
		if user, ok := currentUser(c); ok {
			h.logger.Info("Quiz finished",
				zap.String("user_id", user.ID),
				zap.Int("score", quiz.Score()),
				zap.Int("questions", len(quiz.Questions)),
			)
		}
	}

	text := feedback + "\n\n" + questionText(quiz)
	markup := questionMarkup(quiz)
	if err := c.Edit(text, markup); err != nil {
		if handleErr := h.handleEditError(err, c); handleErr == nil {
			return nil
		}
		return c.Send(text, markup)
	}
	return c.Respond(&tele.CallbackResponse{Text: feedback})
}
