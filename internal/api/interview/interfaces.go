package interview

import (
	"context"

	"github.com/futig/interview-bot/internal/entity"
	"github.com/futig/interview-bot/internal/pkg/formatter"
)

type InterviewUsecase interface {
	AskQuestion(ctx context.Context, req *entity.AskQuestionRequest) (*entity.QuestionResponse, error)
	EvaluateAnswer(ctx context.Context, req *entity.EvaluateAnswerRequest) (*entity.EvaluationResponse, error)
	RetryQuestion(ctx context.Context, req *entity.RetryQuestionRequest) (*entity.QuestionResponse, error)
	GenerateSummary(ctx context.Context, req *entity.GenerateSummaryRequest) (*entity.SummaryResponse, error)
}

type FormatterFactory interface {
	Create(format entity.ResultFormat) (formatter.Formatter, error)
}
