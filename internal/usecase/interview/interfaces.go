package interview

import (
	"context"

	"github.com/futig/interview-bot/internal/entity"
)

type LLMConnector interface {
	Generate(ctx context.Context, req *entity.LLMGenerateRequest) (string, error)
}
