package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	pkgRetry "github.com/futig/interview-bot/internal/pkg/retry"
	"github.com/futig/interview-bot/internal/telegram/render"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// MessageSender delivers messages and documents, retrying transient failures
type MessageSender struct {
	api      API
	retryCfg pkgRetry.RetryConfig
	logger   *zap.Logger
}

func NewMessageSender(api API, retryCfg pkgRetry.RetryConfig, logger *zap.Logger) *MessageSender {
	return &MessageSender{
		api:      api,
		retryCfg: retryCfg,
		logger:   logger,
	}
}

// Send sends text to the chat, split into several messages when it is too
// long. The markup is attached to the last part.
func (s *MessageSender) Send(ctx context.Context, chatID int64, text string, markup any) error {
	parts := render.SplitMessage(text, render.MaxMessageLength)
	for i, part := range parts {
		msg := tgbotapi.NewMessage(chatID, part)
		if markup != nil && i == len(parts)-1 {
			msg.ReplyMarkup = markup
		}
		if err := s.deliver(ctx, msg); err != nil {
			s.logger.Error("failed to send message",
				zap.Error(err),
				zap.Int64("chat_id", chatID),
			)
			return err
		}
	}
	return nil
}

func (s *MessageSender) SendDocument(ctx context.Context, chatID int64, filename string, data []byte) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: filename, Bytes: data})
	if err := s.deliver(ctx, doc); err != nil {
		s.logger.Error("failed to send document",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
			zap.String("filename", filename),
		)
		return fmt.Errorf("send document: %w", err)
	}
	return nil
}

// AnswerCallback acknowledges a button press. Failures are only logged.
func (s *MessageSender) AnswerCallback(callbackID, text string) {
	if _, err := s.api.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		s.logger.Warn("failed to answer callback",
			zap.Error(err),
			zap.String("callback_id", callbackID),
		)
	}
}

func (s *MessageSender) deliver(ctx context.Context, c tgbotapi.Chattable) error {
	return pkgRetry.Do(ctx, &s.retryCfg, func() error {
		_, err := s.api.Send(c)
		if isPermanent(err) {
			return pkgRetry.Permanent(err)
		}
		return err
	})
}

// isPermanent reports Telegram rejections that a resend cannot fix.
func isPermanent(err error) bool {
	var tgErr *tgbotapi.Error
	if !errors.As(err, &tgErr) {
		return false
	}
	return tgErr.Code == http.StatusBadRequest || tgErr.Code == http.StatusForbidden
}
