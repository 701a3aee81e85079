package handler

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"wordtrainer/internal/catalog"
	"wordtrainer/internal/domain"
	"wordtrainer/internal/middleware"
	"wordtrainer/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const requestTimeout = 10 * time.Second

// Services groups the use cases the handler drives
type Services struct {
	Accounts *service.AccountService
	Daily    *service.DailyWordSelector
	Progress *service.ProgressTracker
	Streak   *service.StreakMonitor
	Stats    *service.StatsService
	Speaking *service.SpeakingService
	Grammar  *service.GrammarService
}

// Handler manages all bot interactions
type Handler struct {
	bot      *tele.Bot
	services Services
	catalog  *catalog.Catalog
	location *time.Location
	logger   *zap.Logger
	now      func() time.Time
	shuffle  domain.Shuffler
	pick     func(n int) int

	// Chat states (in-memory state machine)
	states   map[int64]*domain.StateData
	stateMux sync.RWMutex

	// Per-chat locks serialise handlers of one chat. An entry lives only
	// while some handler holds or waits for it.
	chatLocks map[int64]*chatLock
	lockMux   sync.Mutex
}

type chatLock struct {
	mu   sync.Mutex
	refs int
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	services Services,
	words *catalog.Catalog,
	location *time.Location,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:       bot,
		services:  services,
		catalog:   words,
		location:  location,
		logger:    logger,
		now:       time.Now,
		shuffle:   rand.Shuffle,
		pick:      rand.IntN,
		states:    make(map[int64]*domain.StateData),
		chatLocks: make(map[int64]*chatLock),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands that work without a session
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/help", h.handleHelp)
	h.bot.Handle("/register", h.handleRegister)
	h.bot.Handle("/login", h.handleLogin)

	// Commands and buttons that need a session
	authed := h.bot.Group()
	authed.Use(middleware.RequireSession(h.services.Accounts, h.logger))

	authed.Handle("/logout", h.handleLogout)
	authed.Handle("/today", h.handleToday)
	authed.Handle("/stats", h.handleStats)
	authed.Handle("/quiz", h.handleQuiz)
	authed.Handle("/speak", h.handleSpeak)
	authed.Handle("/grammar", h.handleGrammar)

	authed.Handle(&btnToday, h.handleToday)
	authed.Handle(&btnStats, h.handleStats)
	authed.Handle(&btnQuiz, h.handleQuiz)
	authed.Handle(&btnSpeak, h.handleSpeak)
	authed.Handle(&btnGrammar, h.handleGrammar)
	authed.Handle(&btnMainMenu, h.handleMenu)
	authed.Handle(&btnCancel, h.handleCancel)
	authed.Handle(&btnLearned, h.handleLearned)
	authed.Handle(&btnReview, h.handleReview)
	authed.Handle(&btnAnswer, h.handleAnswer)
	authed.Handle(&btnGrammarLevel, h.handleGrammarLevel)
	authed.Handle(&btnGrammarAnswer, h.handleGrammarAnswer)
	authed.Handle(&btnGrammarNext, h.handleGrammarNext)

	// Text messages carry speaking transcripts
	authed.Handle(tele.OnText, h.handleText)

	// Generic callback handler for dynamic data
	authed.Handle(tele.OnCallback, h.handleCallback)
}

// GetState returns the chat's current state
func (h *Handler) GetState(chatID int64) *domain.StateData {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[chatID]
	if !exists {
		return &domain.StateData{State: domain.StateIdle}
	}
	return state
}

// SetState sets the chat's state
func (h *Handler) SetState(chatID int64, state *domain.StateData) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[chatID] = state
}

// ResetState resets the chat to idle state. Idle chats hold no entry.
func (h *Handler) ResetState(chatID int64) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	delete(h.states, chatID)
}

// lockChat serialises updates of one chat and returns the unlock func
func (h *Handler) lockChat(chatID int64) func() {
	h.lockMux.Lock()
	lock, exists := h.chatLocks[chatID]
	if !exists {
		lock = &chatLock{}
		h.chatLocks[chatID] = lock
	}
	lock.refs++
	h.lockMux.Unlock()

	lock.mu.Lock()
	return func() {
		lock.mu.Unlock()

		h.lockMux.Lock()
		defer h.lockMux.Unlock()
		lock.refs--
		if lock.refs == 0 {
			delete(h.chatLocks, chatID)
		}
	}
}

// today returns the current instant in the configured time zone
func (h *Handler) today() time.Time {
	return h.now().In(h.location)
}

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

// currentUser returns the user of the session set by middleware
func currentUser(c tele.Context) (domain.User, bool) {
	session := middleware.SessionFrom(c)
	if session == nil {
		return domain.User{}, false
	}
	return session.User()
}

// Inline keyboard buttons
var (
	btnToday = tele.Btn{
		Unique: "today",
		Text:   "📚 Today's words",
	}
	btnQuiz = tele.Btn{
		Unique: "quiz",
		Text:   "📝 Quiz",
	}
	btnSpeak = tele.Btn{
		Unique: "speak",
		Text:   "🎤 Speaking",
	}
	btnGrammar = tele.Btn{
		Unique: "grammar",
		Text:   "✍️ Grammar",
	}
	btnStats = tele.Btn{
		Unique: "stats",
		Text:   "📊 Statistics",
	}
	btnCancel = tele.Btn{
		Unique: "cancel",
		Text:   "❌ Cancel",
	}
	btnMainMenu = tele.Btn{
		Unique: "main_menu",
		Text:   "🏠 Main menu",
	}
)

// Buttons built per message with markup.Data; only Unique is fixed
var (
	btnLearned = tele.Btn{Unique: "learned"}
	btnReview  = tele.Btn{Unique: "review"}
	btnAnswer  = tele.Btn{Unique: "answer"}

	btnGrammarLevel  = tele.Btn{Unique: "grammar_level"}
	btnGrammarAnswer = tele.Btn{Unique: "grammar_answer"}
	btnGrammarNext   = tele.Btn{Unique: "grammar_next"}
)

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnToday),
		menu.Row(btnQuiz, btnSpeak),
		menu.Row(btnGrammar, btnStats),
	)
	return menu
}

// backMarkup returns a keyboard with only the main menu button
func backMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnMainMenu))
	return markup
}
