package handler

import (
	"errors"
	"strconv"
	"strings"

	"wordquiz/internal/domain"
	"wordquiz/internal/quiz"
	"wordquiz/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleQuizSetup shows the quiz settings with their defaults
func (h *Handler) handleQuizSetup(c tele.Context) error {
	userID := c.Sender().ID

	h.quizService.Stop(userID)
	state := h.GetState(userID)
	state.State = domain.StateQuizSetup
	if state.QuizFormat == "" {
		state.QuizFormat = domain.FormatFreeText
	}
	if !state.QuizDirection.Valid() {
		state.QuizDirection = domain.WordToTranslation
	}
	h.SetState(userID, state)
	return h.showQuizSetup(c, state)
}

func (h *Handler) handleQuizFormat(c tele.Context, format domain.Format) error {
	return h.updateQuizSetup(c, func(state *domain.StateData) {
		if format == domain.FormatChoice {
			state.QuizFormat = domain.FormatChoice
		} else {
			state.QuizFormat = domain.FormatFreeText
		}
	})
}

func (h *Handler) handleQuizDirection(c tele.Context, dir domain.Direction) error {
	return h.updateQuizSetup(c, func(state *domain.StateData) {
		if dir.Valid() {
			state.QuizDirection = dir
		}
	})
}

func (h *Handler) handleQuizPage(c tele.Context, pageKey string) error {
	return h.updateQuizSetup(c, func(state *domain.StateData) {
		state.QuizPages = togglePage(state.QuizPages, pageKey)
	})
}

func (h *Handler) updateQuizSetup(c tele.Context, fn func(*domain.StateData)) error {
	userID := c.Sender().ID

	state := h.GetState(userID)
	if state.State != domain.StateQuizSetup {
		return alert(c, "Настройки устарели, открой тест заново")
	}
	fn(state)
	h.SetState(userID, state)
	return h.showQuizSetup(c, state)
}

// togglePage adds or removes a page from the selection.
// An empty key clears the selection, which means every page.
func togglePage(pages []string, key string) []string {
	if key == "" {
		return nil
	}
	out := make([]string, 0, len(pages)+1)
	found := false
	for _, p := range pages {
		if p == key {
			found = true
			continue
		}
		out = append(out, p)
	}
	if !found {
		out = append(out, key)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func (h *Handler) showQuizSetup(c tele.Context, state *domain.StateData) error {
	userID := c.Sender().ID

	markup := &tele.ReplyMarkup{}
	var rows []tele.Row

	rows = append(rows, tele.Row{
		markup.Data(mark("✍️ Ввод", state.QuizFormat != domain.FormatChoice), cbQuizFormat+string(domain.FormatFreeText)),
		markup.Data(mark("🔘 Варианты", state.QuizFormat == domain.FormatChoice), cbQuizFormat+string(domain.FormatChoice)),
	})
	rows = append(rows, tele.Row{
		markup.Data(mark(directionLabel(domain.WordToTranslation, h.langs), state.QuizDirection == domain.WordToTranslation), cbQuizDir+string(domain.WordToTranslation)),
		markup.Data(mark(directionLabel(domain.TranslationToWord, h.langs), state.QuizDirection == domain.TranslationToWord), cbQuizDir+string(domain.TranslationToWord)),
	})

	selected := make(map[string]bool, len(state.QuizPages))
	for _, p := range state.QuizPages {
		selected[p] = true
	}
	pageRow := tele.Row{markup.Data(mark("Все", len(state.QuizPages) == 0), cbQuizPage)}
	for _, p := range h.vocabService.Pages(userID) {
		key := p.Key()
		pageRow = append(pageRow, markup.Data(mark(key, selected[key]), cbQuizPage+key))
	}
	rows = append(rows, chunkRow(pageRow, 5)...)

	rows = append(rows,
		tele.Row{markup.Data("▶️ Начать", cbQuizStart)},
		markup.Row(btnMainMenu),
	)
	markup.Inline(rows...)

	return h.show(c, renderQuizSetup(state, h.langs), markup)
}

// handleQuizStart builds the quiz from the chosen settings
func (h *Handler) handleQuizStart(c tele.Context) error {
	userID := c.Sender().ID

	state := h.GetState(userID)
	if state.State != domain.StateQuizSetup {
		return alert(c, "Настройки устарели, открой тест заново")
	}

	entries := h.vocabService.Entries(userID)
	session, err := h.quizService.Start(userID, entries, quiz.PageScope(state.QuizPages...), state.QuizDirection, state.QuizFormat)
	if errors.Is(err, service.ErrNotEnoughWords) {
		if state.QuizFormat == domain.FormatChoice {
			return alert(c, "Для теста с вариантами нужно хотя бы 4 слова")
		}
		return alert(c, "На выбранных страницах нет слов с переводом")
	}
	if err != nil {
		h.logger.Error("Failed to start quiz", zap.Error(err), zap.Int64("user_id", userID))
		return c.Respond(&tele.CallbackResponse{Text: errorText})
	}

	state.State = domain.StateQuizAnswer
	h.SetState(userID, state)
	return h.showQuestion(c, session)
}

// handleQuizAnswer grades a free text answer sent as a message
func (h *Handler) handleQuizAnswer(c tele.Context, text string) error {
	userID := c.Sender().ID

	if current, err := h.quizService.Session(userID); err == nil && current.Format == domain.FormatChoice {
		return c.Send("Выбери один из вариантов кнопкой")
	}

	session, err := h.quizService.Answer(userID, text)
	switch {
	case errors.Is(err, quiz.ErrEmptyAnswer):
		return c.Send("Пустой ответ. Напиши перевод")
	case errors.Is(err, service.ErrAlreadyGraded):
		return c.Send("Ответ уже проверен. Жми «Дальше»", feedbackMarkup(session))
	case errors.Is(err, service.ErrNoSession):
		h.ResetState(userID)
		return c.Send("Тест уже закончился.\n\n"+mainMenuText, mainMenuMarkup())
	case err != nil:
		h.logger.Error("Failed to grade answer", zap.Error(err), zap.Int64("user_id", userID))
		return c.Send(errorText)
	}

	return c.Send(renderFeedback(session), feedbackMarkup(session), tele.ModeHTML)
}

// handleQuizChoice grades a multiple choice button: <session id>_<option>
func (h *Handler) handleQuizChoice(c tele.Context, payload string) error {
	userID := c.Sender().ID

	sessionID, option, ok := parseChoice(payload)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "Неверный вариант"})
	}

	session, err := h.quizService.Choose(userID, sessionID, option)
	switch {
	case errors.Is(err, service.ErrStaleSession), errors.Is(err, service.ErrNoSession):
		return alert(c, "Этот тест уже закончился")
	case errors.Is(err, service.ErrAlreadyGraded):
		return c.Respond(&tele.CallbackResponse{Text: "Ответ уже принят"})
	case err != nil:
		h.logger.Warn("Failed to grade choice", zap.Error(err), zap.Int64("user_id", userID))
		return c.Respond(&tele.CallbackResponse{Text: "Неверный вариант"})
	}

	return h.show(c, renderFeedback(session), feedbackMarkup(session))
}

// parseChoice splits "<session id>_<option index>"
func parseChoice(payload string) (string, int, bool) {
	i := strings.LastIndex(payload, "_")
	if i <= 0 {
		return "", 0, false
	}
	option, err := strconv.Atoi(payload[i+1:])
	if err != nil {
		return "", 0, false
	}
	return payload[:i], option, true
}

func (h *Handler) handleQuizNext(c tele.Context) error {
	userID := c.Sender().ID

	session, result, err := h.quizService.Next(userID)
	switch {
	case errors.Is(err, service.ErrNoSession):
		return alert(c, "Этот тест уже закончился")
	case errors.Is(err, service.ErrNotGraded):
		return c.Respond(&tele.CallbackResponse{Text: "Сначала ответь на вопрос"})
	case err != nil:
		h.logger.Error("Failed to advance quiz", zap.Error(err), zap.Int64("user_id", userID))
		return c.Respond(&tele.CallbackResponse{Text: errorText})
	}

	if result != nil {
		state := h.GetState(userID)
		state.State = domain.StateQuizSetup
		h.SetState(userID, state)

		markup := &tele.ReplyMarkup{}
		markup.Inline(
			markup.Row(btnQuiz),
			markup.Row(btnMainMenu),
		)
		return h.show(c, renderResult(*result), markup)
	}
	return h.showQuestion(c, session)
}

func (h *Handler) handleQuizRetry(c tele.Context) error {
	userID := c.Sender().ID

	session, err := h.quizService.Retry(userID)
	switch {
	case errors.Is(err, service.ErrNoSession):
		return alert(c, "Этот тест уже закончился")
	case errors.Is(err, service.ErrNotGraded):
		return c.Respond(&tele.CallbackResponse{Text: "Сначала ответь на вопрос"})
	case errors.Is(err, service.ErrAlreadyGraded):
		return c.Respond(&tele.CallbackResponse{Text: "Ответ уже верный"})
	case err != nil:
		h.logger.Error("Failed to retry question", zap.Error(err), zap.Int64("user_id", userID))
		return c.Respond(&tele.CallbackResponse{Text: errorText})
	}
	return h.showQuestion(c, session)
}

// handleQuizListen reads the current prompt aloud
func (h *Handler) handleQuizListen(c tele.Context) error {
	userID := c.Sender().ID

	session, err := h.quizService.Session(userID)
	if err != nil {
		return alert(c, "Этот тест уже закончился")
	}

	lang := h.langs.Word
	if session.Direction == domain.TranslationToWord {
		lang = h.langs.Translation
	}
	h.player.Play(session.Current().Prompt, lang)
	return c.Respond(&tele.CallbackResponse{Text: "🔊"})
}

func (h *Handler) handleQuizStop(c tele.Context) error {
	userID := c.Sender().ID

	h.quizService.Stop(userID)
	h.player.Stop()
	return h.handleQuizSetup(c)
}

// showQuestion renders the current question with its buttons
func (h *Handler) showQuestion(c tele.Context, session service.Session) error {
	markup := &tele.ReplyMarkup{}
	var rows []tele.Row

	q := session.Current()
	if session.Format == domain.FormatChoice {
		for i, option := range q.Options {
			rows = append(rows, tele.Row{
				markup.Data(option, cbQuizChoice+session.ID+"_"+strconv.Itoa(i)),
			})
		}
	} else {
		rows = append(rows, tele.Row{markup.Data("🔊 Слушать", cbQuizListen)})
	}
	rows = append(rows, tele.Row{markup.Data("⏹ Закончить", cbQuizStop)})
	markup.Inline(rows...)

	return h.show(c, renderQuestion(session), markup)
}

func feedbackMarkup(session service.Session) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	var row tele.Row
	if session.Feedback != nil && !session.Feedback.Correct() {
		row = append(row, markup.Data("🔁 Ещё раз", cbQuizRetry))
	}
	next := "➡️ Дальше"
	if session.Index+1 >= len(session.Questions) {
		next = "🏁 Итог"
	}
	row = append(row, markup.Data(next, cbQuizNext))
	markup.Inline(row, tele.Row{markup.Data("⏹ Закончить", cbQuizStop)})
	return markup
}
