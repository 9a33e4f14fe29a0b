package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"wordquiz/internal/domain"
	"wordquiz/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Prefixes of dynamic callback data
const (
	cbPage        = "pg_"
	cbFilter      = "fl_"
	cbLearned     = "lw_"
	cbDelete      = "dw_"
	cbQuizFormat  = "qf_"
	cbQuizDir     = "qd_"
	cbQuizPage    = "qp_"
	cbQuizChoice  = "mc_"
	cbQuizStart   = "qs"
	cbQuizNext    = "qn"
	cbQuizRetry   = "qr"
	cbQuizListen  = "ql"
	cbQuizStop    = "qx"
	cbReset       = "rs"
	maxWordRows   = 40
	wordTextLimit = 3500
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

// handleEditError handles errors from c.Edit() - if message is not modified, just acknowledge callback
// Otherwise, acknowledge callback and return error so caller can send new message
func (h *Handler) handleEditError(err error, c tele.Context, userID int64) error {
	if err == nil {
		return nil
	}

	// Same content as before, nothing to update
	if strings.Contains(err.Error(), "message is not modified") {
		h.logger.Debug("Message already up to date, acknowledging",
			zap.Int64("user_id", userID),
			zap.String("callback_id", c.Callback().ID),
		)
		c.Respond()
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("user_id", userID),
		zap.String("callback_id", c.Callback().ID),
	)
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// show edits the message behind a button press, or sends a new one
func (h *Handler) show(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	if c.Callback() != nil {
		if err := c.Edit(text, markup, tele.ModeHTML); err != nil {
			if handleErr := h.handleEditError(err, c, c.Sender().ID); handleErr == nil {
				return nil
			}
			return c.Send(text, markup, tele.ModeHTML)
		}
		return c.Respond()
	}
	return c.Send(text, markup, tele.ModeHTML)
}

// alert answers a button press with a popup
func alert(c tele.Context, text string) error {
	return c.Respond(&tele.CallbackResponse{Text: text, ShowAlert: true})
}

// handleCallback handles ALL callback queries
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	userID := c.Sender().ID
	data := cleanCallbackData(callback.Data)
	h.logger.Debug("handleCallback: Processing callback",
		zap.String("data", data),
		zap.String("id", callback.ID),
		zap.String("unique", callback.Unique),
		zap.Int64("user_id", userID),
	)

	// Static buttons whose Unique did not reach their own handler
	switch data {
	case btnWords.Unique:
		return h.handleWords(c)
	case btnAddWord.Unique:
		return h.handleAddWord(c)
	case btnQuiz.Unique:
		return h.handleQuizSetup(c)
	case btnCancel.Unique, btnMainMenu.Unique:
		return h.handleMainMenu(c)
	}

	unlock := h.lockUser(userID)
	defer unlock()

	switch {
	case strings.HasPrefix(data, cbPage):
		return h.handlePageSelect(c, strings.TrimPrefix(data, cbPage))
	case strings.HasPrefix(data, cbFilter):
		return h.handleFilterSelect(c, domain.LearnedFilter(strings.TrimPrefix(data, cbFilter)))
	case strings.HasPrefix(data, cbLearned):
		return h.handleToggleLearned(c, strings.TrimPrefix(data, cbLearned))
	case strings.HasPrefix(data, cbDelete):
		return h.handleDeleteWord(c, strings.TrimPrefix(data, cbDelete))
	case strings.HasPrefix(data, cbQuizFormat):
		return h.handleQuizFormat(c, domain.Format(strings.TrimPrefix(data, cbQuizFormat)))
	case strings.HasPrefix(data, cbQuizDir):
		return h.handleQuizDirection(c, domain.Direction(strings.TrimPrefix(data, cbQuizDir)))
	case strings.HasPrefix(data, cbQuizPage):
		return h.handleQuizPage(c, strings.TrimPrefix(data, cbQuizPage))
	case strings.HasPrefix(data, cbQuizChoice):
		return h.handleQuizChoice(c, strings.TrimPrefix(data, cbQuizChoice))
	case data == cbQuizStart:
		return h.handleQuizStart(c)
	case data == cbQuizNext:
		return h.handleQuizNext(c)
	case data == cbQuizRetry:
		return h.handleQuizRetry(c)
	case data == cbQuizListen:
		return h.handleQuizListen(c)
	case data == cbQuizStop:
		return h.handleQuizStop(c)
	case data == cbReset:
		return h.handleResetConfirm(c)
	}

	h.logger.Warn("Unhandled callback in handleCallback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
	)
	return c.Respond()
}

// handleWords shows the word cards for the current page and filter
func (h *Handler) handleWords(c tele.Context) error {
	userID := c.Sender().ID

	h.quizService.Stop(userID)
	h.ResetState(userID)
	return h.showWords(c, h.GetState(userID))
}

func (h *Handler) handlePageSelect(c tele.Context, pageKey string) error {
	userID := c.Sender().ID

	state := h.GetState(userID)
	state.PageKey = pageKey
	h.SetState(userID, state)
	return h.showWords(c, state)
}

func (h *Handler) handleFilterSelect(c tele.Context, filter domain.LearnedFilter) error {
	userID := c.Sender().ID

	state := h.GetState(userID)
	state.Filter = filter
	h.SetState(userID, state)
	return h.showWords(c, state)
}

func (h *Handler) handleToggleLearned(c tele.Context, idText string) error {
	userID := c.Sender().ID

	id, err := strconv.ParseInt(idText, 10, 64)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Неверное слово"})
	}

	if _, err := h.vocabService.ToggleLearned(userID, id); err != nil {
		if errors.Is(err, service.ErrEntryNotFound) {
			return alert(c, "Слово уже удалено")
		}
		h.logger.Error("Failed to toggle learned", zap.Error(err), zap.Int64("user_id", userID))
		return c.Respond(&tele.CallbackResponse{Text: errorText})
	}
	return h.showWords(c, h.GetState(userID))
}

func (h *Handler) handleDeleteWord(c tele.Context, idText string) error {
	userID := c.Sender().ID

	id, err := strconv.ParseInt(idText, 10, 64)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Неверное слово"})
	}

	if err := h.vocabService.Delete(userID, id); err != nil {
		if errors.Is(err, service.ErrEntryNotFound) {
			return alert(c, "Слово уже удалено")
		}
		h.logger.Error("Failed to delete word", zap.Error(err), zap.Int64("user_id", userID))
		return c.Respond(&tele.CallbackResponse{Text: errorText})
	}
	return h.showWords(c, h.GetState(userID))
}

// showWords renders the word cards with page, filter and per-word buttons
func (h *Handler) showWords(c tele.Context, state *domain.StateData) error {
	userID := c.Sender().ID

	pages := h.vocabService.Pages(userID)
	entries := h.vocabService.View(userID, state.PageKey, state.Filter)

	markup := &tele.ReplyMarkup{}
	var rows []tele.Row

	// Page selector
	pageRow := tele.Row{markup.Data(mark("Все", state.PageKey == ""), cbPage)}
	for _, p := range pages {
		key := p.Key()
		pageRow = append(pageRow, markup.Data(mark(key, state.PageKey == key), cbPage+key))
	}
	rows = append(rows, chunkRow(pageRow, 5)...)

	// Learned filter
	rows = append(rows, tele.Row{
		markup.Data(mark("Все", state.Filter != domain.FilterLearned && state.Filter != domain.FilterUnlearned), cbFilter+string(domain.FilterAll)),
		markup.Data(mark("✅ Выучено", state.Filter == domain.FilterLearned), cbFilter+string(domain.FilterLearned)),
		markup.Data(mark("📖 Учу", state.Filter == domain.FilterUnlearned), cbFilter+string(domain.FilterUnlearned)),
	})

	for i, e := range entries {
		if i == maxWordRows {
			break
		}
		rows = append(rows, tele.Row{
			markup.Data(fmt.Sprintf("%s #%d %s", learnedIcon(e.Learned), e.ID, e.Word), cbLearned+strconv.FormatInt(e.ID, 10)),
			markup.Data("🗑", cbDelete+strconv.FormatInt(e.ID, 10)),
		})
	}

	rows = append(rows, markup.Row(btnAddWord), markup.Row(btnMainMenu))
	markup.Inline(rows...)

	return h.show(c, renderWordList(entries, state.PageKey, maxWordRows, wordTextLimit), markup)
}

func mark(text string, selected bool) string {
	if selected {
		return "• " + text
	}
	return text
}

func learnedIcon(learned bool) string {
	if learned {
		return "✅"
	}
	return "⬜"
}

// chunkRow splits a long button row into rows of at most size buttons
func chunkRow(row tele.Row, size int) []tele.Row {
	var rows []tele.Row
	for len(row) > size {
		rows = append(rows, row[:size])
		row = row[size:]
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return rows
}
