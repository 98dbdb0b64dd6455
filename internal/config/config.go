package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	pkgRetry "github.com/futig/interview-bot/internal/pkg/retry"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	Port int `env:"PORT" envDefault:"5000"`
	// ShutdownTimeout bounds the graceful stop of the HTTP server
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Text generation upstream
	LLMConnectorCfg LLMConnectorConfig `envPrefix:"LLM_"`
	// Legacy name of the upstream credential, used when LLM_API_KEY is empty
	GeminiAPIKey string `env:"GEMINI_API_KEY"`

	InterviewCfg    InterviewConfig    `envPrefix:"INTERVIEW_"`
	InterviewAPICfg InterviewAPIConfig `envPrefix:"INTERVIEW_API_"`
	ReportCfg       ReportConfig       `envPrefix:"REPORT_"`

	// Telegram bot configuration (optional)
	TelegramCfg TelegramConfig `envPrefix:"TELEGRAM_"`

	// Environment (set from flag, not from env var)
	Environment string
}

type LLMConnectorConfig struct {
	Provider  string        `env:"PROVIDER" envDefault:"gemini"`
	Model     string        `env:"MODEL" envDefault:"gemini-2.5-flash"`
	APIKey    string        `env:"API_KEY"`
	BaseURL   string        `env:"BASE_URL"`
	Timeout   time.Duration `env:"TIMEOUT" envDefault:"60s"`
	MaxTokens int           `env:"MAX_TOKENS" envDefault:"2048"`
}

type InterviewConfig struct {
	// StrictRetry sends the last asked question with retry requests
	StrictRetry bool `env:"STRICT_RETRY" envDefault:"false"`
}

// InterviewAPIConfig points front ends at a running interview backend
type InterviewAPIConfig struct {
	HTTPClientConfig
}

type ReportConfig struct {
	// PDFFontPath is an optional UTF-8 TTF font for PDF reports
	PDFFontPath string `env:"PDF_FONT_PATH"`
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken           string        `env:"BOT_TOKEN"`
	UpdateTimeout      int           `env:"UPDATE_TIMEOUT" envDefault:"60"`
	RateLimitPerMinute int           `env:"RATE_LIMIT_PER_MINUTE" envDefault:"20"`
	RateLimitBurst     int           `env:"RATE_LIMIT_BURST" envDefault:"5"`
	ShutdownTimeout    int           `env:"SHUTDOWN_TIMEOUT" envDefault:"30"` // seconds
	SessionTTL         time.Duration `env:"SESSION_TTL" envDefault:"2h"`
	// RemoteOrchestrator sends interview actions to INTERVIEW_API_SERVICE_URL
	// instead of calling the model in-process
	RemoteOrchestrator bool                 `env:"REMOTE_ORCHESTRATOR" envDefault:"false"`
	SendRetry          pkgRetry.RetryConfig `envPrefix:"SEND_RETRY_"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"90s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"90s"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL" envDefault:"http://localhost:5000"`
}

// ServerAddr is the listen address derived from PORT
func (c *Config) ServerAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func LoadConfig(environment string) (*Config, error) {
	envFile := getEnvFile(environment)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = environment

	if cfg.LLMConnectorCfg.APIKey == "" {
		cfg.LLMConnectorCfg.APIKey = cfg.GeminiAPIKey
	}

	// Validate configuration
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	if cfg.Port < 1 || cfg.Port > 65535 {
		errors = append(errors, fmt.Sprintf("PORT must be between 1 and 65535, got %d", cfg.Port))
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of debug, info, warn, error, got %q", cfg.LogLevel))
	}

	switch cfg.LLMConnectorCfg.Provider {
	case "gemini", "openai", "claude":
	default:
		errors = append(errors, fmt.Sprintf("LLM_PROVIDER must be one of gemini, openai, claude, got %q", cfg.LLMConnectorCfg.Provider))
	}

	if cfg.LLMConnectorCfg.Timeout < 0 {
		errors = append(errors, fmt.Sprintf("LLM_TIMEOUT must not be negative, got %s", cfg.LLMConnectorCfg.Timeout))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// ValidateUpstream checks what the in-process orchestrator needs
func (c *Config) ValidateUpstream() error {
	if c.EnableMocks {
		return nil
	}
	if c.LLMConnectorCfg.APIKey == "" {
		return fmt.Errorf("LLM_API_KEY (or GEMINI_API_KEY) is required unless ENABLE_MOCKS is set")
	}
	return nil
}

// Validate checks the settings the Telegram bot needs
func (c *TelegramConfig) Validate() error {
	var errors []string

	if c.BotToken == "" {
		errors = append(errors, "TELEGRAM_BOT_TOKEN is required")
	}

	if c.RateLimitPerMinute < 1 || c.RateLimitPerMinute > 60 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_RATE_LIMIT_PER_MINUTE must be between 1 and 60, got %d", c.RateLimitPerMinute))
	}

	if c.RateLimitBurst < 1 || c.RateLimitBurst > 20 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_RATE_LIMIT_BURST must be between 1 and 20, got %d", c.RateLimitBurst))
	}

	if c.ShutdownTimeout < 1 || c.ShutdownTimeout > 300 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_SHUTDOWN_TIMEOUT must be between 1 and 300 seconds, got %d", c.ShutdownTimeout))
	}

	if c.SessionTTL < time.Minute {
		errors = append(errors, fmt.Sprintf("TELEGRAM_SESSION_TTL must be at least 1m, got %s", c.SessionTTL))
	}

	if len(errors) > 0 {
		return fmt.Errorf("telegram configuration errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
