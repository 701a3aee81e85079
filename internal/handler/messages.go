package handler

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"wordtrainer/internal/domain"
	"wordtrainer/internal/service"

	tele "gopkg.in/telebot.v3"
)

const (
	msgInternalError = "Something went wrong. Please try again later."
	msgSignInHelp    = "To get started, create an account or sign in:\n\n" +
		"/register <name> <email> <password>\n" +
		"/login <email> <password>\n\n" +
		"The password needs at least 6 letters or digits."
)

// errorText turns a service error into a chat message
func errorText(err error) string {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		fields := make([]string, 0, len(vErr.Fields))
		for field := range vErr.Fields {
			fields = append(fields, field)
		}
		sort.Strings(fields)

		lines := make([]string, 0, len(fields))
		for _, field := range fields {
			lines = append(lines, "❌ "+vErr.Fields[field])
		}
		return strings.Join(lines, "\n")
	case errors.Is(err, domain.ErrDuplicateAccount):
		return "❌ An account with this email already exists."
	case errors.Is(err, domain.ErrAuthentication):
		return "❌ Invalid email or password."
	case errors.Is(err, domain.ErrInsufficientWords):
		return "There are not enough words in the catalog yet."
	default:
		return msgInternalError
	}
}

// menuText greets the user and mentions missed days
func menuText(user domain.User, checkIn domain.CheckInResult, today domain.Day) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🏠 Welcome, %s!\n", user.Name)

	if checkIn.MissedDays > 0 && checkIn.Previous != nil {
		fmt.Fprintf(&b, "\n⚠️ You missed %s. Last visit: %s\n", domain.DayCount(checkIn.MissedDays), checkIn.Previous.DisplayString(today))
	}

	b.WriteString("\nChoose an action:")
	return b.String()
}

// todayText lists the day's words with the user's marks
func todayText(words []domain.Word, progress domain.ProgressRecord) string {
	learned := 0
	for _, w := range words {
		if progress.IsLearned(w.ID) {
			learned++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📚 Today's words (%d/%d learned):\n\n", learned, len(words))
	for i, w := range words {
		marks := ""
		if progress.IsLearned(w.ID) {
			marks += " ✅"
		}
		if progress.NeedsReview(w.ID) {
			marks += " 🔁"
		}
		fmt.Fprintf(&b, "%d. %s %s - %s%s\n", i+1, w.English, w.Pronunciation, w.Translation, marks)
	}
	return b.String()
}

// todayMarkup builds learned/review buttons for every word
func todayMarkup(words []domain.Word, progress domain.ProgressRecord) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := make([]tele.Row, 0, len(words)+1)

	for _, w := range words {
		id := strconv.Itoa(w.ID)

		learnedText := "✅ " + w.English
		if progress.IsLearned(w.ID) {
			learnedText = "✔️ " + w.English
		}
		reviewText := "🔁 Review"
		if progress.NeedsReview(w.ID) {
			reviewText = "🔁 In review"
		}

		rows = append(rows, markup.Row(
			markup.Data(learnedText, btnLearned.Unique, id),
			markup.Data(reviewText, btnReview.Unique, id),
		))
	}

	rows = append(rows, markup.Row(btnMainMenu))
	markup.Inline(rows...)
	return markup
}

// statsText summarises progress, speaking counters and grammar points
func statsText(stats domain.Stats, speaking domain.SpeakingStats, grammar domain.GrammarScore) string {
	var b strings.Builder
	b.WriteString("📊 Your statistics\n\n")
	fmt.Fprintf(&b, "Total words: %d\n", stats.TotalWords)
	fmt.Fprintf(&b, "Learned: %d\n", stats.LearnedWords)
	fmt.Fprintf(&b, "For review: %d\n", stats.ReviewWords)
	fmt.Fprintf(&b, "Today: %d\n", stats.DailyWords)
	fmt.Fprintf(&b, "Progress: %d%%\n", stats.ProgressPercent)
	fmt.Fprintf(&b, "Speaking: %d successful of %d attempts\n", speaking.Successes, speaking.Attempts)
	fmt.Fprintf(&b, "Grammar points: %d\n", grammar.Total)

	b.WriteString("\n🏆 Achievements\n")
	for _, a := range stats.Achievements {
		mark := "🔒"
		if a.Unlocked {
			mark = "🏅"
		}
		fmt.Fprintf(&b, "%s %s (%d words)\n", mark, a.Name, a.Goal)
	}
	return b.String()
}

// questionText renders the current quiz question
func questionText(quiz *domain.Quiz) string {
	question, ok := quiz.Current()
	if !ok {
		return quizResultText(quiz)
	}
	return fmt.Sprintf("📝 Question %d/%d\n\nWhat is the translation of \"%s\"?",
		quiz.Position()+1, len(quiz.Questions), question.Word.English)
}

// questionMarkup builds one button per option. The question position is
// part of the payload so answers to old messages can be told apart.
func questionMarkup(quiz *domain.Quiz) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	question, ok := quiz.Current()
	if !ok {
		markup.Inline(markup.Row(btnQuiz), markup.Row(btnMainMenu))
		return markup
	}

	position := strconv.Itoa(quiz.Position())
	rows := make([]tele.Row, 0, len(question.Options)+1)
	for i, option := range question.Options {
		rows = append(rows, markup.Row(markup.Data(option, btnAnswer.Unique, position, strconv.Itoa(i))))
	}
	rows = append(rows, markup.Row(btnCancel))
	markup.Inline(rows...)
	return markup
}

// quizResultText reports the final score
func quizResultText(quiz *domain.Quiz) string {
	total := len(quiz.Questions)
	percent := 0
	if total > 0 {
		percent = quiz.Score() * 100 / total
	}
	return fmt.Sprintf("🎉 Quiz finished!\n\nScore: %d/%d (%d%%)", quiz.Score(), total, percent)
}

// phraseText asks the user to pronounce a phrase
func phraseText(phrase domain.Phrase) string {
	return fmt.Sprintf("🎤 Read this phrase aloud and send me the transcript "+
		"(use your keyboard's voice input):\n\n\"%s\"\n\nDifficulty: %s", phrase.Text, phrase.Difficulty)
}

// attemptText reports a graded pronunciation attempt
func attemptText(attempt service.Attempt) string {
	return fmt.Sprintf("%s\n\nMatch: %d%%\nSuccessful attempts: %d of %d",
		attempt.Grade.Message(),
		int(attempt.Similarity*100+0.5),
		attempt.Stats.Successes,
		attempt.Stats.Attempts,
	)
}

// grammarLevelsText introduces the grammar challenge
func grammarLevelsText(score domain.GrammarScore) string {
	return fmt.Sprintf("✍️ Grammar challenge\n\nTotal points: %d\n\nChoose a level:", score.Total)
}

// grammarLevelsMarkup offers one button per level
func grammarLevelsMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := make([]tele.Row, 0, len(domain.GrammarLevels)+1)
	for _, level := range domain.GrammarLevels {
		rows = append(rows, markup.Row(markup.Data(level.Title(), btnGrammarLevel.Unique, string(level))))
	}
	rows = append(rows, markup.Row(btnMainMenu))
	markup.Inline(rows...)
	return markup
}

// grammarQuestionText renders the current grammar question
func grammarQuestionText(quiz *domain.GrammarQuiz) string {
	question, ok := quiz.Current()
	if !ok {
		return ""
	}
	return fmt.Sprintf("✍️ %s · Question %d/%d · %d points\n\n%s",
		quiz.Level.Title(), quiz.Position()+1, len(quiz.Questions), quiz.Score(), question.Text)
}

// grammarQuestionMarkup builds one button per option, keyed by question position
func grammarQuestionMarkup(quiz *domain.GrammarQuiz) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	question, ok := quiz.Current()
	if !ok {
		return grammarCompleteMarkup(quiz.Level)
	}

	position := strconv.Itoa(quiz.Position())
	rows := make([]tele.Row, 0, len(question.Options)+1)
	for i, option := range question.Options {
		rows = append(rows, markup.Row(markup.Data(option, btnGrammarAnswer.Unique, position, strconv.Itoa(i))))
	}
	rows = append(rows, markup.Row(btnCancel))
	markup.Inline(rows...)
	return markup
}

// grammarFeedbackText reports an answered question with its explanation
func grammarFeedbackText(question domain.GrammarQuestion, correct bool) string {
	feedback := fmt.Sprintf("✅ Correct! +%d points", domain.GrammarPoints)
	if !correct {
		feedback = "❌ Wrong. Correct answer: " + question.Correct
	}
	return fmt.Sprintf("%s\n\n%s\n\n💡 %s", question.Text, feedback, question.Explanation)
}

// grammarFeedbackMarkup moves on to the next question or to the results
func grammarFeedbackMarkup(quiz *domain.GrammarQuiz) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	label := "➡️ Next question"
	if quiz.Done() {
		label = "🏁 Finish"
	}
	markup.Inline(
		markup.Row(markup.Data(label, btnGrammarNext.Unique, strconv.Itoa(quiz.Position()))),
		markup.Row(btnCancel),
	)
	return markup
}

// grammarCompleteText reports the level score and the all-time total
func grammarCompleteText(quiz *domain.GrammarQuiz, total domain.GrammarScore) string {
	return fmt.Sprintf("🏆 Level Complete!\n\nYour score: %d / %d\nTotal points earned: %d",
		quiz.Score(), quiz.MaxScore(), total.Total)
}

// grammarCompleteMarkup offers a retry and, below advanced, the next level
func grammarCompleteMarkup(level domain.GrammarLevel) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{markup.Row(markup.Data("🔄 Try again", btnGrammarLevel.Unique, string(level)))}
	if next, ok := level.Next(); ok {
		rows = append(rows, markup.Row(markup.Data("⏭ Next level: "+next.Title(), btnGrammarLevel.Unique, string(next))))
	}
	rows = append(rows, markup.Row(btnMainMenu))
	markup.Inline(rows...)
	return markup
}
