package handler

import (
	"wordquiz/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const passwordPrompt = "Привет! Это тренажёр слов. Чтобы начать, введи пароль:"

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User started bot",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	authorized, err := h.authService.Check(userID)
	if err != nil {
		h.logger.Error("Failed to check authorization", zap.Error(err))
		return c.Send(errorText)
	}

	// A running quiz ends when the user goes back to the start
	h.quizService.Stop(userID)

	if !authorized {
		h.SetState(userID, &domain.StateData{State: domain.StateWaitingPassword})
		return c.Send(passwordPrompt)
	}

	h.ResetState(userID)
	return c.Send(mainMenuText, mainMenuMarkup())
}

// handleMainMenu shows the main menu in place of the current message
func (h *Handler) handleMainMenu(c tele.Context) error {
	userID := c.Sender().ID

	h.quizService.Stop(userID)
	h.ResetState(userID)
	return h.show(c, mainMenuText, mainMenuMarkup())
}

// handleCancel cancels current operation and resets state
func (h *Handler) handleCancel(c tele.Context) error {
	return h.handleMainMenu(c)
}
