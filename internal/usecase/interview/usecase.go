package interview

import (
	"context"
	"fmt"
	"strings"

	"github.com/futig/interview-bot/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// InterviewUsecase turns one interview action into exactly one text
// generation call. It keeps no state between calls.
type InterviewUsecase struct {
	llmConnector LLMConnector
	logger       *zap.Logger
}

// NewUsecase creates a new interview use case
func NewUsecase(llmConnector LLMConnector, logger *zap.Logger) *InterviewUsecase {
	return &InterviewUsecase{
		llmConnector: llmConnector,
		logger:       logger,
	}
}

// AskQuestion generates the question with the given 1-based number
func (uc *InterviewUsecase) AskQuestion(ctx context.Context, req *entity.AskQuestionRequest) (*entity.QuestionResponse, error) {
	ctxzap.Info(ctx, "asking question",
		zap.String("role", req.Role),
		zap.Int("question_number", req.QuestionNumber),
	)

	question, err := uc.generate(ctx, askQuestionPrompt(req.InterviewSetup, req.QuestionNumber))
	if err != nil {
		return nil, fmt.Errorf("ask question: %w", err)
	}

	return &entity.QuestionResponse{Question: question}, nil
}

// EvaluateAnswer scores the last answer in the history and asks the next question
func (uc *InterviewUsecase) EvaluateAnswer(ctx context.Context, req *entity.EvaluateAnswerRequest) (*entity.EvaluationResponse, error) {
	question, answer, err := AnsweredPair(req.ConversationHistory)
	if err != nil {
		return nil, fmt.Errorf("evaluate answer: %w", err)
	}

	ctxzap.Info(ctx, "evaluating answer", zap.Int("history_len", len(req.ConversationHistory)))

	raw, err := uc.generate(ctx, evaluateAnswerPrompt(req.InterviewSetup, question, answer))
	if err != nil {
		return nil, fmt.Errorf("evaluate answer: %w", err)
	}

	resp := ParseEvaluation(raw)
	if resp.Question == EndOfInterviewNotice {
		ctxzap.Warn(ctx, "model response has no next question section")
	}

	return resp, nil
}

// RetryQuestion asks the model to repeat its last question
func (uc *InterviewUsecase) RetryQuestion(ctx context.Context, req *entity.RetryQuestionRequest) (*entity.QuestionResponse, error) {
	ctxzap.Info(ctx, "retrying question",
		zap.Int("question_number", req.QuestionNumber),
		zap.Bool("with_previous_question", req.PreviousQuestion != ""),
	)

	question, err := uc.generate(ctx, retryQuestionPrompt(req.InterviewSetup, req.PreviousQuestion))
	if err != nil {
		return nil, fmt.Errorf("retry question: %w", err)
	}

	return &entity.QuestionResponse{Question: question}, nil
}

// GenerateSummary produces the final report for the whole transcript
func (uc *InterviewUsecase) GenerateSummary(ctx context.Context, req *entity.GenerateSummaryRequest) (*entity.SummaryResponse, error) {
	ctxzap.Info(ctx, "generating summary", zap.Int("history_len", len(req.ConversationHistory)))

	prompt, err := summaryPrompt(req.ConversationHistory)
	if err != nil {
		return nil, fmt.Errorf("generate summary: %w", err)
	}

	summary, err := uc.generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate summary: %w", err)
	}

	return &entity.SummaryResponse{Summary: summary}, nil
}

// generate collapses every upstream failure, including blank output, into ErrGenerationFailed
func (uc *InterviewUsecase) generate(ctx context.Context, prompt string) (string, error) {
	text, err := uc.llmConnector.Generate(ctx, &entity.LLMGenerateRequest{
		Prompt:            prompt,
		SystemInstruction: SystemInstruction,
	})
	if err != nil {
		ctxzap.Error(ctx, "text generation failed", zap.Error(err))
		return "", fmt.Errorf("%w: %w", entity.ErrGenerationFailed, err)
	}

	if strings.TrimSpace(text) == "" {
		ctxzap.Error(ctx, "text generation returned empty text")
		return "", fmt.Errorf("%w: empty text", entity.ErrGenerationFailed)
	}

	return text, nil
}
