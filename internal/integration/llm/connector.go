package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/futig/interview-bot/internal/config"
	"github.com/futig/interview-bot/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderClaude = "claude"
)

// chatModel is the part of eino's chat model contract the connector needs.
type chatModel interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error)
}

type Connector struct {
	config    config.LLMConnectorConfig
	chatModel chatModel
	logger    *zap.Logger
}

func NewConnector(
	ctx context.Context,
	cfg config.LLMConnectorConfig,
	logger *zap.Logger,
) (*Connector, error) {
	cm, err := newChatModel(ctx, cfg)
	if err != nil {
		return nil, err
	}

	logger.Info("llm chat model initialized",
		zap.String("provider", cfg.Provider),
		zap.String("model", cfg.Model),
	)

	return newConnectorWithModel(cfg, cm, logger), nil
}

func newConnectorWithModel(cfg config.LLMConnectorConfig, cm chatModel, logger *zap.Logger) *Connector {
	return &Connector{
		config:    cfg,
		chatModel: cm,
		logger:    logger,
	}
}

func newChatModel(ctx context.Context, cfg config.LLMConnectorConfig) (model.ToolCallingChatModel, error) {
	var (
		cm  model.ToolCallingChatModel
		err error
	)

	switch cfg.Provider {
	case ProviderGemini:
		var client *genai.Client
		client, err = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey: cfg.APIKey,
		})
		if err != nil {
			return nil, fmt.Errorf("create genai client: %w", err)
		}
		cm, err = gemini.NewChatModel(ctx, &gemini.Config{
			Client: client,
			Model:  cfg.Model,
		})
	case ProviderOpenAI:
		cm, err = openai.NewChatModel(ctx, &openai.ChatModelConfig{
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			APIKey:  cfg.APIKey,
		})
	case ProviderClaude:
		var baseURL *string
		if cfg.BaseURL != "" {
			baseURL = &cfg.BaseURL
		}
		cm, err = claude.NewChatModel(ctx, &claude.Config{
			APIKey:    cfg.APIKey,
			Model:     cfg.Model,
			BaseURL:   baseURL,
			MaxTokens: cfg.MaxTokens,
		})
	default:
		return nil, fmt.Errorf("%w: %q", entity.ErrUnsupportedProvider, cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("create %s chat model: %w", cfg.Provider, err)
	}

	return cm, nil
}

// Generate performs one bounded chat completion. Blank output is an error.
func (c *Connector) Generate(ctx context.Context, req *entity.LLMGenerateRequest) (string, error) {
	ctxzap.Info(ctx, "generating text via LLM",
		zap.String("provider", c.config.Provider),
		zap.Int("prompt_len", len(req.Prompt)),
	)

	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	messages := make([]*schema.Message, 0, 2)
	if req.SystemInstruction != "" {
		messages = append(messages, &schema.Message{
			Role:    schema.System,
			Content: req.SystemInstruction,
		})
	}
	messages = append(messages, &schema.Message{
		Role:    schema.User,
		Content: req.Prompt,
	})

	resp, err := c.chatModel.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("generate text failed: %w", err)
	}

	if resp == nil || strings.TrimSpace(resp.Content) == "" {
		return "", fmt.Errorf("invalid generation response: empty or missing content")
	}

	ctxzap.Info(ctx, "text generated successfully", zap.Int("response_len", len(resp.Content)))

	return resp.Content, nil
}
