package interview

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/futig/interview-bot/internal/entity"
	"github.com/futig/interview-bot/internal/pkg/formatter"
	"github.com/futig/interview-bot/internal/pkg/logger"
	"github.com/futig/interview-bot/internal/pkg/response"
	"github.com/futig/interview-bot/internal/pkg/validator"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	msgInvalidAction   = "Invalid action"
	msgInvalidBody     = "invalid request body"
	msgAskFailed       = "Could not generate a question."
	msgEvaluateFailed  = "Could not evaluate the answer."
	msgRetryFailed     = "Could not retry the question."
	msgSummaryFailed   = "Could not generate the summary."
	msgReportFailed    = "Could not build the report."
	reportFileBaseName = "interview-summary"
)

type Handler struct {
	usecase    InterviewUsecase
	formatters FormatterFactory
	validator  *validator.Validator
}

func NewHandler(usecase InterviewUsecase, formatters FormatterFactory, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:    usecase,
		formatters: formatters,
		validator:  validator,
	}
}

// Interview handles POST /api/interview and dispatches on the action field.
func (h *Handler) Interview(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Interview")

	var req entity.InterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, msgInvalidBody, err)
		return
	}

	ctx = logger.AddFields(ctx, zap.String("interview_action", string(req.Action)))

	// An unknown action is rejected before its fields are looked at.
	if !req.Action.IsValid() {
		h.respondError(ctx, w, http.StatusBadRequest, msgInvalidAction, entity.ErrInvalidAction)
		return
	}

	if err := h.validator.ValidateInterviewRequest(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, err.Error(), err)
		return
	}

	switch req.Action {
	case entity.ActionAskQuestion:
		ctxzap.Info(ctx, "asking question", zap.Int("question_number", req.QuestionNumber))
		resp, err := h.usecase.AskQuestion(ctx, &entity.AskQuestionRequest{
			InterviewSetup: req.Setup(),
			QuestionNumber: req.QuestionNumber,
		})
		h.respond(ctx, w, resp, err, msgAskFailed)

	case entity.ActionEvaluateAnswer:
		ctxzap.Info(ctx, "evaluating answer", zap.Int("history_len", len(req.ConversationHistory)))
		resp, err := h.usecase.EvaluateAnswer(ctx, &entity.EvaluateAnswerRequest{
			InterviewSetup:      req.Setup(),
			ConversationHistory: req.ConversationHistory,
		})
		h.respond(ctx, w, resp, err, msgEvaluateFailed)

	case entity.ActionRetryQuestion:
		ctxzap.Info(ctx, "retrying question")
		resp, err := h.usecase.RetryQuestion(ctx, &entity.RetryQuestionRequest{
			InterviewSetup:   req.Setup(),
			QuestionNumber:   req.QuestionNumber,
			PreviousQuestion: req.PreviousQuestion,
		})
		h.respond(ctx, w, resp, err, msgRetryFailed)

	case entity.ActionGenerateSummary:
		ctxzap.Info(ctx, "generating summary", zap.Int("history_len", len(req.ConversationHistory)))
		resp, err := h.usecase.GenerateSummary(ctx, &entity.GenerateSummaryRequest{
			ConversationHistory: req.ConversationHistory,
		})
		h.respond(ctx, w, resp, err, msgSummaryFailed)

	default:
		h.respondError(ctx, w, http.StatusBadRequest, msgInvalidAction, entity.ErrInvalidAction)
	}
}

// Report handles POST /api/interview/report?format=markdown|pdf|docx.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Report")

	format := entity.ResultFormat(r.URL.Query().Get("format"))
	if format == "" {
		format = entity.FormatMarkdown
	}

	var req entity.ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, msgInvalidBody, err)
		return
	}

	if err := h.validator.ValidateReportRequest(&req, format); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, err.Error(), err)
		return
	}

	fm, err := h.formatters.Create(format)
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, err.Error(), err)
		return
	}

	body, err := fm.Format(formatter.ComposeReport(&req))
	if err != nil {
		h.respondError(ctx, w, http.StatusInternalServerError, msgReportFailed, err)
		return
	}

	ctxzap.Info(ctx, "report built", zap.String("format", string(format)), zap.Int("bytes", len(body)))

	response.Attachment(w, reportFileBaseName+fm.FileExtension(), fm.ContentType(), body)
}

// respond writes resp, or maps err to a status. Generation failures carry the
// per-action message and never a partial result.
func (h *Handler) respond(ctx context.Context, w http.ResponseWriter, resp any, err error, failMessage string) {
	switch {
	case err == nil:
		response.Success(w, resp)
	case errors.Is(err, entity.ErrInvalidHistory), errors.Is(err, entity.ErrInvalidParameter):
		h.respondError(ctx, w, http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, entity.ErrInvalidAction):
		h.respondError(ctx, w, http.StatusBadRequest, msgInvalidAction, err)
	default:
		h.respondError(ctx, w, http.StatusInternalServerError, failMessage, err)
	}
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	ctxzap.Error(ctx, message, zap.Int("status", status), zap.Error(err))
	response.Error(w, status, message)
}
