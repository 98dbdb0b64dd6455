package handlers

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Telegram clears the typing status after five seconds.
const typingInterval = 4 * time.Second

// TypingNotifier keeps the "typing" status visible while a request runs
type TypingNotifier struct {
	api    API
	chatID int64
	logger *zap.Logger
	cancel context.CancelFunc
	done   chan struct{}
}

func NewTypingNotifier(api API, chatID int64, logger *zap.Logger) *TypingNotifier {
	return &TypingNotifier{
		api:    api,
		chatID: chatID,
		logger: logger,
	}
}

// Start sends the typing action now and then every typingInterval until Stop
// or ctx is done.
func (t *TypingNotifier) Start(ctx context.Context) {
	if t.cancel != nil {
		return
	}

	ctx, t.cancel = context.WithCancel(ctx)
	t.done = make(chan struct{})
	t.send()

	go func() {
		defer close(t.done)
		ticker := time.NewTicker(typingInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				t.send()
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop ends the notifier and waits for its goroutine.
func (t *TypingNotifier) Stop() {
	if t.cancel == nil {
		return
	}
	t.cancel()
	<-t.done
	t.cancel = nil
}

func (t *TypingNotifier) send() {
	if _, err := t.api.Request(tgbotapi.NewChatAction(t.chatID, tgbotapi.ChatTyping)); err != nil {
		t.logger.Warn("failed to send typing action",
			zap.Error(err),
			zap.Int64("chat_id", t.chatID),
		)
	}
}
