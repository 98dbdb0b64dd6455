package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/futig/interview-bot/internal/api"
	interviewapi "github.com/futig/interview-bot/internal/api/interview"
	"github.com/futig/interview-bot/internal/config"
	interviewclient "github.com/futig/interview-bot/internal/integration/interview"
	"github.com/futig/interview-bot/internal/integration/llm"
	"github.com/futig/interview-bot/internal/pkg/formatter"
	"github.com/futig/interview-bot/internal/pkg/validator"
	"github.com/futig/interview-bot/internal/session"
	"github.com/futig/interview-bot/internal/telegram"
	"github.com/futig/interview-bot/internal/usecase/interview"
	"go.uber.org/zap"
)

// Build wires the HTTP server hosting the interview orchestrator.
func Build(environment string) (*App, error) {
	ctx := context.Background()

	cfg, logger, err := load(environment, "")
	if err != nil {
		return nil, err
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr()),
	)

	if err := cfg.ValidateUpstream(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	usecase, err := newInterviewUsecase(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	handler := interviewapi.NewHandler(usecase, formatter.NewFactory(cfg.ReportCfg.PDFFontPath), validator.NewValidator())
	router := api.SetupRouter(handler, logger, requestTimeout(cfg.LLMConnectorCfg.Timeout))
	logger.Info("HTTP router configured")

	// Write timeout covers the request deadline plus encoding.
	server := &http.Server{
		Addr:         cfg.ServerAddr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: requestTimeout(cfg.LLMConnectorCfg.Timeout) + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully", zap.String("environment", cfg.Environment))

	return &App{
		server:          server,
		logger:          logger,
		shutdownTimeout: cfg.ShutdownTimeout,
	}, nil
}

// requestTimeout is the per-request deadline of the HTTP API: one upstream
// call bounded by LLM_TIMEOUT plus request handling.
func requestTimeout(llmTimeout time.Duration) time.Duration {
	return llmTimeout + 15*time.Second
}

// BuildTelegramBot creates the Telegram front end.
func BuildTelegramBot(environment string) (telegram.Bot, *zap.Logger, error) {
	ctx := context.Background()

	cfg, logger, err := load(environment, "")
	if err != nil {
		return nil, nil, err
	}

	logger.Info("Building Telegram bot", zap.String("environment", cfg.Environment))

	if err := cfg.TelegramCfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	orchestrator, err := NewOrchestrator(ctx, cfg, logger, cfg.TelegramCfg.RemoteOrchestrator)
	if err != nil {
		return nil, nil, err
	}

	controller := session.NewController(orchestrator, session.WithStrictRetry(cfg.InterviewCfg.StrictRetry))

	bot, err := telegram.NewBot(&cfg.TelegramCfg, controller, formatter.NewFactory(cfg.ReportCfg.PDFFontPath), logger)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	logger.Info("Telegram bot built successfully", zap.String("environment", cfg.Environment))

	return bot, logger, nil
}

// Runtime is what an interactive front end needs to drive sessions.
type Runtime struct {
	Config     *config.Config
	Logger     *zap.Logger
	Controller *session.Controller
	Formatters *formatter.Factory
}

// BuildRuntime loads configuration and picks the orchestrator: in-process
// when local is set, the interview API otherwise. A non-empty logLevel
// overrides LOG_LEVEL.
func BuildRuntime(environment, logLevel string, local bool) (*Runtime, error) {
	ctx := context.Background()

	cfg, logger, err := load(environment, logLevel)
	if err != nil {
		return nil, err
	}

	orchestrator, err := NewOrchestrator(ctx, cfg, logger, !local)
	if err != nil {
		return nil, err
	}

	return &Runtime{
		Config:     cfg,
		Logger:     logger,
		Controller: session.NewController(orchestrator, session.WithStrictRetry(cfg.InterviewCfg.StrictRetry)),
		Formatters: formatter.NewFactory(cfg.ReportCfg.PDFFontPath),
	}, nil
}

// NewOrchestrator returns the interview API client when remote is set and
// the in-process use case otherwise.
func NewOrchestrator(ctx context.Context, cfg *config.Config, logger *zap.Logger, remote bool) (session.Orchestrator, error) {
	if remote {
		logger.Info("Using remote interview API", zap.String("url", cfg.InterviewAPICfg.Url))
		return interviewclient.NewClient(cfg.InterviewAPICfg, logger), nil
	}

	if err := cfg.ValidateUpstream(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	usecase, err := newInterviewUsecase(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return usecase, nil
}

func newInterviewUsecase(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*interview.InterviewUsecase, error) {
	var llmConnector interview.LLMConnector

	if cfg.EnableMocks {
		logger.Info("Using mock connectors for external services")
		llmConnector = llm.NewMockConnector(logger)
	} else {
		logger.Info("Using real connectors for external services")
		conn, err := llm.NewConnector(ctx, cfg.LLMConnectorCfg, logger)
		if err != nil {
			return nil, fmt.Errorf("create llm connector: %w", err)
		}
		llmConnector = conn
	}

	return interview.NewUsecase(llmConnector, logger), nil
}

func load(environment, logLevel string) (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(environment)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if logLevel == "" {
		logLevel = cfg.LogLevel
	}

	logger, err := setupLogger(logLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("setup logger: %w", err)
	}

	return cfg, logger, nil
}
