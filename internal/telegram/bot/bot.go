package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/futig/interview-bot/internal/config"
	"github.com/futig/interview-bot/internal/entity"
	"github.com/futig/interview-bot/internal/telegram/handlers"
	"github.com/futig/interview-bot/internal/telegram/keyboard"
	"github.com/futig/interview-bot/internal/telegram/middleware"
	"github.com/futig/interview-bot/internal/telegram/render"
	"github.com/futig/interview-bot/internal/telegram/state"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// API is the Telegram client used by the bot
type API interface {
	handlers.API
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Bot represents the Telegram bot
type Bot struct {
	api         API
	cfg         *config.TelegramConfig
	deps        *handlers.Deps
	handlers    map[string]handlers.Handler
	logger      *zap.Logger
	loggingMW   *middleware.LoggingMiddleware
	recoveryMW  *middleware.RecoveryMiddleware
	rateLimitMW *middleware.RateLimiterMiddleware
	updatesChan tgbotapi.UpdatesChannel
	stopChan    chan struct{}
	stopOnce    sync.Once
	wg          sync.WaitGroup
}

// New creates a bot over an authorized Telegram client
func New(
	api API,
	cfg *config.TelegramConfig,
	stateManager *state.Manager,
	controller handlers.InterviewController,
	formatters handlers.FormatterFactory,
	logger *zap.Logger,
) *Bot {
	b := &Bot{
		api:      api,
		cfg:      cfg,
		logger:   logger,
		handlers: make(map[string]handlers.Handler),
		stopChan: make(chan struct{}),
	}

	b.deps = &handlers.Deps{
		API:        api,
		States:     stateManager,
		Controller: controller,
		Keyboard:   keyboard.NewBuilder(),
		Sender:     handlers.NewMessageSender(api, cfg.SendRetry, logger),
		Formatters: formatters,
		Logger:     logger,
	}

	b.loggingMW = middleware.NewLoggingMiddleware(logger)
	b.recoveryMW = middleware.NewRecoveryMiddleware(logger, api)
	b.rateLimitMW = middleware.NewRateLimiterMiddleware(
		cfg.RateLimitPerMinute,
		cfg.RateLimitBurst,
		logger,
		api,
	)

	return b
}

func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("starting telegram bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.UpdateTimeout
	b.updatesChan = b.api.GetUpdatesChan(u)

	ctx = ctxzap.ToContext(ctx, b.logger)
	go b.processUpdates(ctx)

	b.logger.Info("telegram bot started successfully")
	return nil
}

// Stop stops the bot gracefully with timeout
func (b *Bot) Stop() error {
	b.logger.Info("stopping telegram bot")

	b.stopOnce.Do(func() {
		close(b.stopChan)
		b.api.StopReceivingUpdates()
		b.rateLimitMW.Close()
	})

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	shutdownTimeout := time.Duration(b.cfg.ShutdownTimeout) * time.Second
	select {
	case <-done:
		b.logger.Info("all handlers completed gracefully")
	case <-time.After(shutdownTimeout):
		b.logger.Warn("shutdown timeout exceeded, some handlers may not have completed",
			zap.Duration("timeout", shutdownTimeout),
		)
		return fmt.Errorf("shutdown timeout exceeded")
	}

	b.logger.Info("telegram bot stopped successfully")
	return nil
}

func (b *Bot) processUpdates(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			ctxzap.Info(ctx, "context cancelled, stopping update processing")
			return
		case <-b.stopChan:
			ctxzap.Info(ctx, "stop signal received, stopping update processing")
			return
		case update, ok := <-b.updatesChan:
			if !ok {
				return
			}
			b.wg.Add(1)
			go func(u tgbotapi.Update) {
				defer b.wg.Done()
				b.HandleUpdate(ctx, u)
			}(update)
		}
	}
}

// HandleUpdate runs rate limit, logging and recovery around the actual
// handler. It blocks until the update is processed.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	b.rateLimitMW.Handle(update, func(u tgbotapi.Update) {
		b.loggingMW.Handle(u, func(u2 tgbotapi.Update) {
			b.recoveryMW.Handle(u2, func(u3 tgbotapi.Update) {
				b.handleUpdate(ctx, u3)
			})
		})
	})
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallbackQuery(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	ctx = ctxzap.ToContext(ctx, ctxzap.Extract(ctx).With(zap.Int64("chat_id", chatID)))

	if message.IsCommand() {
		b.handleCommand(ctx, message)
		return
	}

	st, err := b.deps.States.GetOrCreate(ctx, chatID)
	if err != nil {
		ctxzap.Error(ctx, "failed to get chat state", zap.Error(err))
		b.sendError(ctx, chatID, render.ErrGeneric)
		return
	}

	handlerState := routeState(st)
	handler, exists := b.handlers[handlerState]
	if !exists {
		ctxzap.Warn(ctx, "no handler for state", zap.String("state", handlerState))
		b.sendError(ctx, chatID, render.MsgUseStart)
		return
	}

	msg := &handlers.Message{
		ChatID:    chatID,
		MessageID: message.MessageID,
		Text:      message.Text,
	}
	if message.From != nil {
		msg.UserID = message.From.ID
	}

	if err := handler.Handle(ctx, msg); err != nil {
		ctxzap.Error(ctx, "handler error",
			zap.Error(err),
			zap.String("state", handlerState),
		)
		b.sendError(ctx, chatID, render.ClassifyError(err))
	}
}

// routeState picks the handler for a text message: setup steps first, then
// the view of the interview session.
func routeState(st *state.ChatState) string {
	switch st.Step() {
	case state.StepRole, state.StepMode, state.StepDomain:
		return handlers.HandlerStateSetup
	}

	switch st.Session.Snapshot().View {
	case entity.ViewInterview:
		return handlers.HandlerStateInterview
	case entity.ViewSummary:
		return handlers.HandlerStateSummary
	default:
		return handlers.HandlerStateSetup
	}
}

func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	command := message.Command()

	ctxzap.Info(ctx, "command received", zap.String("command", command))

	switch command {
	case "start":
		st, err := b.deps.States.GetOrCreate(ctx, chatID)
		if err != nil {
			ctxzap.Error(ctx, "failed to get chat state", zap.Error(err))
			b.sendError(ctx, chatID, render.ErrGeneric)
			return
		}
		if err := b.deps.StartSetup(ctx, chatID, st); err != nil {
			ctxzap.Error(ctx, "failed to start setup", zap.Error(err))
		}
	case "help":
		b.sendError(ctx, chatID, render.MsgHelp)
	case "cancel":
		b.handleCancelCommand(ctx, chatID)
	default:
		b.sendError(ctx, chatID, "❌ Unknown command. "+render.MsgUseStart)
	}
}

func (b *Bot) handleCancelCommand(ctx context.Context, chatID int64) {
	if st, err := b.deps.States.Get(ctx, chatID); err == nil {
		b.deps.Controller.NewInterview(st.Session)
	}

	if err := b.deps.States.Delete(ctx, chatID); err != nil {
		ctxzap.Error(ctx, "failed to delete chat state", zap.Error(err))
	}

	b.sendError(ctx, chatID, render.MsgCancelled)
}

func (b *Bot) handleCallbackQuery(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if query.Message == nil || query.Message.Chat == nil {
		b.deps.Sender.AnswerCallback(query.ID, "")
		return
	}
	chatID := query.Message.Chat.ID
	ctx = ctxzap.ToContext(ctx, ctxzap.Extract(ctx).With(zap.Int64("chat_id", chatID)))

	handler, exists := b.handlers[handlers.HandlerStateCallback]
	if !exists {
		ctxzap.Warn(ctx, "callback handler not registered")
		b.deps.Sender.AnswerCallback(query.ID, "❌ Handler not found")
		return
	}

	msg := &handlers.Message{
		ChatID:       chatID,
		MessageID:    query.Message.MessageID,
		CallbackData: query.Data,
		CallbackID:   query.ID,
	}
	if query.From != nil {
		msg.UserID = query.From.ID
	}

	if err := handler.Handle(ctx, msg); err != nil {
		ctxzap.Error(ctx, "callback handler error", zap.Error(err))
		b.sendError(ctx, chatID, render.ClassifyError(err))
	}
}

// sendError sends a plain message and only logs delivery failures.
func (b *Bot) sendError(ctx context.Context, chatID int64, text string) {
	if err := b.deps.Sender.Send(ctx, chatID, text, nil); err != nil {
		ctxzap.Error(ctx, "failed to send message", zap.Error(err))
	}
}

// RegisterHandler registers a handler for a state
func (b *Bot) RegisterHandler(handler handlers.Handler) {
	state := handler.GetState()
	if !handlers.IsValidState(state) {
		b.logger.Fatal("invalid handler state", zap.String("state", state))
	}

	b.handlers[state] = handler
	b.logger.Debug("handler registered", zap.String("state", state))
}

// Deps returns the dependencies shared with handlers
func (b *Bot) Deps() *handlers.Deps {
	return b.deps
}
