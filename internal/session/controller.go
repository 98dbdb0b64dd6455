package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/futig/interview-bot/internal/entity"
	"github.com/futig/interview-bot/internal/pkg/logger"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Controller drives sessions through setup, interview and summary. It is
// stateless itself; every operation works on the session passed in.
type Controller struct {
	orchestrator Orchestrator
	strictRetry  bool
}

type Option func(*Controller)

// WithStrictRetry makes Retry send the last asked question along with the
// request so the model can reword it.
func WithStrictRetry(strict bool) Option {
	return func(c *Controller) {
		c.strictRetry = strict
	}
}

func NewController(orchestrator Orchestrator, opts ...Option) *Controller {
	c := &Controller{orchestrator: orchestrator}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start captures the setup, clears the session and fetches question 1.
func (c *Controller) Start(ctx context.Context, s *Session, setup entity.InterviewSetup) (Snapshot, error) {
	s.mu.Lock()
	if err := s.begin(entity.ViewSetup); err != nil {
		return s.unlockWith(err)
	}

	s.setup = setup
	s.view = entity.ViewInterview
	s.questionNumber = 0
	s.history = nil
	s.currentQuestion = ""
	s.feedback = ""
	s.summary = ""
	s.lastError = ""

	req := &entity.AskQuestionRequest{InterviewSetup: setup, QuestionNumber: 1}
	epoch := s.epoch
	ctx = logger.WithSession(ctx, s.id)
	s.mu.Unlock()

	ctxzap.Info(ctx, "interview started",
		zap.String("role", setup.Role),
		zap.String("mode", setup.Mode),
		zap.String("domain", setup.Domain),
	)

	return c.askQuestion(ctx, s, epoch, req)
}

// SubmitAnswer records the answer and either evaluates it or, once the
// question limit is reached, requests the summary. Blank answers are
// ignored without error.
func (c *Controller) SubmitAnswer(ctx context.Context, s *Session, answer string) (Snapshot, error) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return s.Snapshot(), nil
	}

	s.mu.Lock()
	if err := s.begin(entity.ViewInterview, s.questionAsked); err != nil {
		return s.unlockWith(err)
	}

	// Resending the answer of a failed attempt does not record it twice.
	// Any other answer, including one after a failed skip, is appended.
	if pending, ok := s.pendingTurn(); !ok || pending.Text != answer {
		s.history = append(s.history, entity.UserTurn(answer))
	}

	history := append([]entity.Turn(nil), s.history...)
	setup := s.setup
	epoch := s.epoch
	final := s.questionNumber >= entity.MaxQuestions
	ctx = logger.WithSession(ctx, s.id)
	s.mu.Unlock()

	if final {
		return c.generateSummary(ctx, s, epoch, history)
	}

	resp, err := c.orchestrator.EvaluateAnswer(ctx, &entity.EvaluateAnswerRequest{
		InterviewSetup:      setup,
		ConversationHistory: history,
	})
	if err != nil {
		ctxzap.Error(ctx, "failed to evaluate answer", zap.Error(err))
		err = fmt.Errorf("evaluate answer: %w", err)
	}

	snap := s.commit(epoch, err, func() {
		s.feedback = resp.Feedback
		s.currentQuestion = resp.Question
		s.history = append(s.history, entity.BotTurn(resp.Question))
		s.questionNumber++
	})

	return snap, err
}

// Skip records a "skip" answer and asks the next question. Unlike
// SubmitAnswer it never checks the question limit.
func (c *Controller) Skip(ctx context.Context, s *Session) (Snapshot, error) {
	s.mu.Lock()
	if err := s.begin(entity.ViewInterview, s.questionAsked); err != nil {
		return s.unlockWith(err)
	}

	if pending, ok := s.pendingTurn(); !ok || pending.Text != entity.SkipAnswer {
		s.history = append(s.history, entity.UserTurn(entity.SkipAnswer))
	}

	req := &entity.AskQuestionRequest{InterviewSetup: s.setup, QuestionNumber: s.questionNumber + 1}
	epoch := s.epoch
	ctx = logger.WithSession(ctx, s.id)
	s.mu.Unlock()

	ctxzap.Info(ctx, "question skipped", zap.Int("question_number", req.QuestionNumber-1))

	return c.askQuestion(ctx, s, epoch, req)
}

// Retry replaces the displayed question with a regenerated one. History and
// the counter stay untouched. Before the first question arrived it fetches
// question 1 instead.
func (c *Controller) Retry(ctx context.Context, s *Session) (Snapshot, error) {
	s.mu.Lock()
	if err := s.begin(entity.ViewInterview); err != nil {
		return s.unlockWith(err)
	}

	epoch := s.epoch
	ctx = logger.WithSession(ctx, s.id)
	if s.questionNumber == 0 {
		req := &entity.AskQuestionRequest{InterviewSetup: s.setup, QuestionNumber: 1}
		s.mu.Unlock()
		return c.askQuestion(ctx, s, epoch, req)
	}

	req := &entity.RetryQuestionRequest{
		InterviewSetup: s.setup,
		QuestionNumber: s.questionNumber,
	}
	if c.strictRetry {
		req.PreviousQuestion = s.lastBotTurn()
	}
	s.mu.Unlock()

	resp, err := c.orchestrator.RetryQuestion(ctx, req)
	if err != nil {
		ctxzap.Error(ctx, "failed to retry question", zap.Error(err))
		err = fmt.Errorf("retry question: %w", err)
	}

	snap := s.commit(epoch, err, func() {
		s.currentQuestion = resp.Question
	})

	return snap, err
}

// NewInterview discards everything and returns the session to setup. It is
// allowed from any view and abandons a request in flight.
func (c *Controller) NewInterview(s *Session) Snapshot {
	fresh := NewSession()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.id = fresh.id
	s.createdAt = fresh.createdAt
	s.view = entity.ViewSetup
	s.setup = entity.InterviewSetup{}
	s.questionNumber = 0
	s.history = nil
	s.currentQuestion = ""
	s.feedback = ""
	s.summary = ""
	s.lastError = ""
	s.inFlight = false
	s.epoch++

	return s.snapshotLocked()
}

func (c *Controller) askQuestion(ctx context.Context, s *Session, epoch uint64, req *entity.AskQuestionRequest) (Snapshot, error) {
	resp, err := c.orchestrator.AskQuestion(ctx, req)
	if err != nil {
		ctxzap.Error(ctx, "failed to get question",
			zap.Int("question_number", req.QuestionNumber),
			zap.Error(err),
		)
		err = fmt.Errorf("ask question: %w", err)
	}

	snap := s.commit(epoch, err, func() {
		s.questionNumber = req.QuestionNumber
		s.currentQuestion = resp.Question
		s.history = append(s.history, entity.BotTurn(resp.Question))
	})

	return snap, err
}

func (c *Controller) generateSummary(ctx context.Context, s *Session, epoch uint64, history []entity.Turn) (Snapshot, error) {
	ctxzap.Info(ctx, "question limit reached, requesting summary", zap.Int("history_len", len(history)))

	resp, err := c.orchestrator.GenerateSummary(ctx, &entity.GenerateSummaryRequest{ConversationHistory: history})
	if err != nil {
		ctxzap.Error(ctx, "failed to generate summary", zap.Error(err))
		err = fmt.Errorf("generate summary: %w", err)
	}

	snap := s.commit(epoch, err, func() {
		s.summary = resp.Summary
		s.view = entity.ViewSummary
	})

	return snap, err
}
