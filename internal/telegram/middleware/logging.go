package middleware

import (
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// LoggingMiddleware logs every update with its kind and handling time.
// Answer texts are never logged.
type LoggingMiddleware struct {
	logger *zap.Logger
}

func NewLoggingMiddleware(logger *zap.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{
		logger: logger,
	}
}

func (m *LoggingMiddleware) Handle(update tgbotapi.Update, next func(tgbotapi.Update)) {
	start := time.Now()
	userID, chatID := updateIDs(update)

	log := m.logger.With(
		zap.Int("update_id", update.UpdateID),
		zap.Int64("user_id", userID),
		zap.Int64("chat_id", chatID),
	)
	log = log.With(describeUpdate(update)...)

	log.Debug("telegram update received")
	next(update)
	log.Info("telegram update processed", zap.Duration("duration", time.Since(start)))
}

// describeUpdate names the update kind plus the command or callback action.
func describeUpdate(update tgbotapi.Update) []zap.Field {
	switch {
	case update.CallbackQuery != nil:
		action, _, _ := strings.Cut(update.CallbackQuery.Data, ":")
		return []zap.Field{zap.String("type", "callback"), zap.String("callback_action", action)}
	case update.Message != nil && update.Message.IsCommand():
		return []zap.Field{zap.String("type", "command"), zap.String("command", update.Message.Command())}
	case update.Message != nil && update.Message.Text != "":
		return []zap.Field{zap.String("type", "text"), zap.Int("text_len", len(update.Message.Text))}
	default:
		return []zap.Field{zap.String("type", "other")}
	}
}
