package handler

import (
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"

	"wordquiz/internal/domain"
	"wordquiz/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const moveUsage = "Использование: /move <id> <страница>\nНапример: /move 12 3\nБез страницы слово уберётся со всех страниц."

// handleText handles all text messages based on state
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	authorized, err := h.authService.Check(userID)
	if err != nil {
		h.logger.Error("Failed to check authorization", zap.Error(err))
		return c.Send(errorText)
	}

	// If not authorized, the message is a password attempt
	if !authorized {
		ok, err := h.authService.Login(userID, text)
		if err != nil {
			h.logger.Error("Failed to authorize user", zap.Error(err))
			return c.Send(errorText)
		}
		if !ok {
			return c.Send("Неверный пароль. Попробуй ещё раз:")
		}

		h.logger.Info("User authorized", zap.Int64("user_id", userID))
		h.ResetState(userID)
		return c.Send("✅ Доступ разрешён!\n\n"+mainMenuText, mainMenuMarkup())
	}

	unlock := h.lockUser(userID)
	defer unlock()

	state := h.GetState(userID)

	switch state.State {
	case domain.StateQuizAnswer:
		return h.handleQuizAnswer(c, text)

	case domain.StateWaitingTranslation:
		entry, err := h.vocabService.Add(userID, state.CurrentWord, text, state.PageKey)
		if err != nil {
			if errors.Is(err, service.ErrEmptyWord) {
				return c.Send("Перевод не может быть пустым. Жду перевод", cancelMarkup())
			}
			h.logger.Error("Failed to add word",
				zap.Error(err),
				zap.Int64("user_id", userID),
			)
			return c.Send("Не удалось сохранить слово. Попробуйте ещё раз.")
		}

		state.State = domain.StateWaitingWord
		state.CurrentWord = ""
		h.SetState(userID, state)

		reply := fmt.Sprintf("✅ Сохранено: <b>%s</b> — %s (#%d)",
			html.EscapeString(entry.Word),
			html.EscapeString(entry.Translation),
			entry.ID,
		)
		if entry.Page.IsSet() {
			reply += fmt.Sprintf(", страница %s", html.EscapeString(entry.Page.Key()))
		}
		reply += "\n\nМожешь отправить следующее слово или вернуться в /start"
		return c.Send(reply, tele.ModeHTML)

	default:
		// Any other text starts a new word, then waits for its translation
		state.State = domain.StateWaitingTranslation
		state.CurrentWord = text
		h.SetState(userID, state)
		return c.Send("Жду перевод", cancelMarkup())
	}
}

// handleAddWord asks for a new word on the page being viewed
func (h *Handler) handleAddWord(c tele.Context) error {
	userID := c.Sender().ID

	h.quizService.Stop(userID)
	state := h.GetState(userID)
	state.State = domain.StateWaitingWord
	state.CurrentWord = ""
	h.SetState(userID, state)

	text := "Отправь слово"
	if state.PageKey != "" {
		text += fmt.Sprintf(" (оно попадёт на страницу %s)", html.EscapeString(state.PageKey))
	}
	return h.show(c, text, cancelMarkup())
}

// handleMove handles /move <id> [page]
func (h *Handler) handleMove(c tele.Context) error {
	userID := c.Sender().ID

	id, pageKey, ok := parseMoveArgs(c.Args())
	if !ok {
		return c.Send(moveUsage)
	}

	unlock := h.lockUser(userID)
	defer unlock()

	entry, err := h.vocabService.MoveToPage(userID, id, pageKey)
	if errors.Is(err, service.ErrEntryNotFound) {
		return c.Send(fmt.Sprintf("Слово #%d не найдено", id))
	}
	if err != nil {
		h.logger.Error("Failed to move word", zap.Error(err), zap.Int64("user_id", userID))
		return c.Send(errorText)
	}

	if !entry.Page.IsSet() {
		return c.Send(fmt.Sprintf("✅ %s больше не на странице", entry.Word))
	}
	return c.Send(fmt.Sprintf("✅ %s теперь на странице %s", entry.Word, entry.Page.Key()))
}

// parseMoveArgs reads "<id> [page]". The page may contain spaces.
func parseMoveArgs(args []string) (int64, string, bool) {
	if len(args) == 0 {
		return 0, "", false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, "", false
	}
	return id, strings.Join(args[1:], " "), true
}

// handleReset asks before replacing the collection with the starter words
func (h *Handler) handleReset(c tele.Context) error {
	markup := &tele.ReplyMarkup{}
	markup.Inline(
		tele.Row{markup.Data("⚠️ Да, сбросить", cbReset)},
		markup.Row(btnCancel),
	)
	return c.Send("Все твои слова удалятся, вместо них появится стартовый набор. Продолжить?", markup)
}

func (h *Handler) handleResetConfirm(c tele.Context) error {
	userID := c.Sender().ID

	h.quizService.Stop(userID)
	entries, err := h.vocabService.Reset(userID)
	if err != nil {
		h.logger.Error("Failed to reset words", zap.Error(err), zap.Int64("user_id", userID))
		return c.Respond(&tele.CallbackResponse{Text: errorText})
	}

	h.SetState(userID, &domain.StateData{State: domain.StateIdle})
	h.logger.Info("User reset words",
		zap.Int64("user_id", userID),
		zap.Int("count", len(entries)),
	)
	return h.showWords(c, h.GetState(userID))
}
