package handler

import (
	"sync"

	"wordquiz/internal/domain"
	"wordquiz/internal/middleware"
	"wordquiz/internal/service"
	"wordquiz/internal/speech"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Languages are the speech hints for the two sides of an entry
type Languages struct {
	Word        string
	Translation string
}

// Handler manages all bot interactions
type Handler struct {
	bot          *tele.Bot
	authService  *service.AuthService
	vocabService *service.VocabService
	quizService  *service.QuizService
	player       *speech.Player
	langs        Languages
	logger       *zap.Logger

	// User states (in-memory state machine)
	states   map[int64]*domain.StateData
	stateMux sync.RWMutex

	// Per-user locks so button presses are handled one at a time
	callbackLocks map[int64]*sync.Mutex
	callbackMux   sync.Mutex
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	authService *service.AuthService,
	vocabService *service.VocabService,
	quizService *service.QuizService,
	player *speech.Player,
	langs Languages,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:           bot,
		authService:   authService,
		vocabService:  vocabService,
		quizService:   quizService,
		player:        player,
		langs:         langs,
		logger:        logger,
		states:        make(map[int64]*domain.StateData),
		callbackLocks: make(map[int64]*sync.Mutex),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	auth := middleware.AuthMiddleware(h.authService, h.logger)

	// Commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/move", h.handleMove, auth)
	h.bot.Handle("/reset", h.handleReset, auth)

	// Text messages (password, new words and quiz answers)
	h.bot.Handle(tele.OnText, h.handleText)

	// Callback queries (inline buttons)
	h.bot.Handle(&btnWords, h.handleWords, auth)
	h.bot.Handle(&btnAddWord, h.handleAddWord, auth)
	h.bot.Handle(&btnQuiz, h.handleQuizSetup, auth)
	h.bot.Handle(&btnCancel, h.handleCancel, auth)
	h.bot.Handle(&btnMainMenu, h.handleMainMenu, auth)

	// Generic callback handler for dynamic data
	h.bot.Handle(tele.OnCallback, h.handleCallback, auth)
}

// GetState returns user's current state
func (h *Handler) GetState(userID int64) *domain.StateData {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[userID]
	if !exists {
		return &domain.StateData{State: domain.StateIdle}
	}
	copied := *state
	copied.QuizPages = append([]string(nil), state.QuizPages...)
	return &copied
}

// SetState sets user's state
func (h *Handler) SetState(userID int64, state *domain.StateData) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[userID] = state
}

// ResetState resets user to idle state, keeping the word list view
func (h *Handler) ResetState(userID int64) {
	state := h.GetState(userID)
	h.SetState(userID, &domain.StateData{
		State:   domain.StateIdle,
		PageKey: state.PageKey,
		Filter:  state.Filter,
	})
}

// lockUser serializes updates of one user. The returned func releases the lock.
func (h *Handler) lockUser(userID int64) func() {
	h.callbackMux.Lock()
	lock, exists := h.callbackLocks[userID]
	if !exists {
		lock = &sync.Mutex{}
		h.callbackLocks[userID] = lock
	}
	h.callbackMux.Unlock()

	lock.Lock()
	return lock.Unlock
}

// Inline keyboard buttons
var (
	btnWords = tele.Btn{
		Unique: "words",
		Text:   "📚 Мои слова",
	}
	btnAddWord = tele.Btn{
		Unique: "add_word",
		Text:   "➕ Добавить слово",
	}
	btnQuiz = tele.Btn{
		Unique: "quiz",
		Text:   "🎯 Тест",
	}
	btnCancel = tele.Btn{
		Unique: "cancel",
		Text:   "❌ Отменить",
	}
	btnMainMenu = tele.Btn{
		Unique: "main_menu",
		Text:   "🏠 Главное меню",
	}
)

const (
	mainMenuText = "🏠 Главное меню\n\nВыберите действие:"
	errorText    = "Произошла ошибка. Попробуйте позже."
)

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnWords),
		menu.Row(btnAddWord),
		menu.Row(btnQuiz),
	)
	return menu
}

func cancelMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnCancel))
	return markup
}
