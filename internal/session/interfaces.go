package session

import (
	"context"

	"github.com/futig/interview-bot/internal/entity"
)

// Orchestrator is implemented both by the in-process interview use case
// and by the HTTP client of the interview API.
type Orchestrator interface {
	AskQuestion(ctx context.Context, req *entity.AskQuestionRequest) (*entity.QuestionResponse, error)
	EvaluateAnswer(ctx context.Context, req *entity.EvaluateAnswerRequest) (*entity.EvaluationResponse, error)
	RetryQuestion(ctx context.Context, req *entity.RetryQuestionRequest) (*entity.QuestionResponse, error)
	GenerateSummary(ctx context.Context, req *entity.GenerateSummaryRequest) (*entity.SummaryResponse, error)
}
