package llm

import (
	"context"
	"strings"

	"github.com/futig/interview-bot/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector answers with canned text shaped like real model output.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) Generate(ctx context.Context, req *entity.LLMGenerateRequest) (string, error) {
	switch {
	case strings.HasPrefix(req.Prompt, "Evaluate the following answer"):
		ctxzap.Info(ctx, "[MOCK] evaluating answer via LLM")
		return "**Feedback:** The answer covers the main idea but misses trade-offs.\n\n" +
			"**Score:** 6/10\n\n" +
			"**Next Question:** How would you monitor this component in production?", nil

	case strings.HasPrefix(req.Prompt, "The interview is over"):
		ctxzap.Info(ctx, "[MOCK] generating summary via LLM")
		return "1. Areas of Strength\n- Clear structure and good fundamentals.\n\n" +
			"2. Areas for Improvement\n- Discuss trade-offs and failure modes explicitly.\n\n" +
			"3. Suggested Resources\n- \"Designing Data-Intensive Applications\" by Martin Kleppmann.", nil

	case strings.Contains(req.Prompt, "retry the last question"):
		ctxzap.Info(ctx, "[MOCK] retrying question via LLM")
		return "Let me rephrase: which trade-offs did you consider in your last project?", nil

	default:
		ctxzap.Info(ctx, "[MOCK] asking question via LLM", zap.Int("prompt_len", len(req.Prompt)))
		return "Tell me about a system you designed and the trade-offs you made.", nil
	}
}
