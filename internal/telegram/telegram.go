package telegram

import (
	"context"
	"fmt"

	"github.com/futig/interview-bot/internal/config"
	"github.com/futig/interview-bot/internal/telegram/bot"
	"github.com/futig/interview-bot/internal/telegram/handlers"
	"github.com/futig/interview-bot/internal/telegram/state"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Bot is the main telegram bot interface
type Bot interface {
	Start(ctx context.Context) error
	Stop() error
}

// NewBot authorizes with Telegram and wires the handlers
func NewBot(
	cfg *config.TelegramConfig,
	controller handlers.InterviewController,
	formatters handlers.FormatterFactory,
	logger *zap.Logger,
) (Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create bot API: %w", err)
	}

	logger.Info("telegram bot authorized",
		zap.String("username", api.Self.UserName),
		zap.Int64("id", api.Self.ID),
	)

	return newBot(api, cfg, controller, formatters, logger), nil
}

func newBot(
	api bot.API,
	cfg *config.TelegramConfig,
	controller handlers.InterviewController,
	formatters handlers.FormatterFactory,
	logger *zap.Logger,
) *bot.Bot {
	stateManager := state.NewManager(state.NewMemoryStorage(cfg.SessionTTL))

	b := bot.New(api, cfg, stateManager, controller, formatters, logger)
	registerHandlers(b, logger)

	logger.Info("telegram bot initialized successfully")
	return b
}

func registerHandlers(b *bot.Bot, logger *zap.Logger) {
	deps := b.Deps()

	setupHandler := handlers.NewSetupHandler(deps)
	interviewHandler := handlers.NewInterviewHandler(deps)
	summaryHandler := handlers.NewSummaryHandler(deps)

	b.RegisterHandler(setupHandler)
	b.RegisterHandler(interviewHandler)
	b.RegisterHandler(summaryHandler)
	b.RegisterHandler(handlers.NewCallbackHandler(deps, setupHandler, interviewHandler, summaryHandler))

	logger.Info("telegram handlers registered", zap.Int("handler_count", 4))
}
