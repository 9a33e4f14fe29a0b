package middleware

import (
	"wordquiz/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	errorText    = "Произошла ошибка. Попробуйте позже."
	passwordText = "Сначала введи пароль. Нажми /start, если потерялся."
)

// AuthMiddleware lets only authorized users through.
// Button presses from unauthorized users are answered with an alert.
func AuthMiddleware(authService *service.AuthService, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			userID := c.Sender().ID

			authorized, err := authService.Check(userID)
			if err != nil {
				logger.Error("Failed to check authorization in middleware",
					zap.Int64("user_id", userID),
					zap.Error(err),
				)
				return deny(c, errorText)
			}

			if !authorized {
				logger.Debug("Rejected unauthorized update", zap.Int64("user_id", userID))
				return deny(c, passwordText)
			}

			return next(c)
		}
	}
}

func deny(c tele.Context, text string) error {
	if c.Callback() != nil {
		return c.Respond(&tele.CallbackResponse{Text: text, ShowAlert: true})
	}
	return c.Send(text)
}
