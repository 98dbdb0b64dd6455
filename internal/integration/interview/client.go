package interview

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/futig/interview-bot/internal/config"
	"github.com/futig/interview-bot/internal/entity"
	"github.com/futig/interview-bot/internal/integration/common"
	pkghttp "github.com/futig/interview-bot/pkg/http"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const interviewEndpoint = "/api/interview"

// Client calls a remote interview backend.
type Client struct {
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewClient(cfg config.InterviewAPIConfig, logger *zap.Logger) *Client {
	return &Client{
		connector: common.NewBaseConnector("interview-api", cfg.HTTPClientConfig, logger),
		logger:    logger,
	}
}

func (c *Client) AskQuestion(ctx context.Context, req *entity.AskQuestionRequest) (*entity.QuestionResponse, error) {
	var resp entity.QuestionResponse
	if err := c.send(ctx, req.Envelope(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) EvaluateAnswer(ctx context.Context, req *entity.EvaluateAnswerRequest) (*entity.EvaluationResponse, error) {
	var resp entity.EvaluationResponse
	if err := c.send(ctx, req.Envelope(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) RetryQuestion(ctx context.Context, req *entity.RetryQuestionRequest) (*entity.QuestionResponse, error) {
	var resp entity.QuestionResponse
	if err := c.send(ctx, req.Envelope(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GenerateSummary(ctx context.Context, req *entity.GenerateSummaryRequest) (*entity.SummaryResponse, error) {
	var resp entity.SummaryResponse
	if err := c.send(ctx, req.Envelope(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// send posts one action and maps error statuses back to domain errors.
func (c *Client) send(ctx context.Context, body *entity.InterviewRequest, out any) error {
	requestID := uuid.NewString()
	ctxzap.Debug(ctx, "sending interview action",
		zap.String("interview_action", string(body.Action)),
		zap.String("request_id", requestID),
	)

	err := c.connector.Post(ctx, interviewEndpoint, body, out,
		pkghttp.WithHeader("X-Request-ID", requestID),
	)
	if err == nil {
		return nil
	}

	var httpErr *pkghttp.HTTPError
	if !errors.As(err, &httpErr) {
		return fmt.Errorf("%s failed: %w", body.Action, err)
	}

	switch {
	case httpErr.StatusCode == http.StatusBadRequest && httpErr.ErrorMessage() == "Invalid action":
		return fmt.Errorf("%s failed: %w", body.Action, entity.ErrInvalidAction)
	case httpErr.StatusCode == http.StatusBadRequest:
		return fmt.Errorf("%s failed: %w: %s", body.Action, entity.ErrInvalidParameter, httpErr.ErrorMessage())
	case httpErr.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%s failed: %w: %s", body.Action, entity.ErrGenerationFailed, httpErr.ErrorMessage())
	default:
		return fmt.Errorf("%s failed: %w", body.Action, err)
	}
}
