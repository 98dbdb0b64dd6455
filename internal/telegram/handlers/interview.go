package handlers

import (
	"context"
	"strings"

	"github.com/futig/interview-bot/internal/session"
	"github.com/futig/interview-bot/internal/telegram/state"
)

// InterviewHandler treats every text message as an answer
type InterviewHandler struct {
	BaseHandler
}

func NewInterviewHandler(deps *Deps) *InterviewHandler {
	return &InterviewHandler{BaseHandler{Deps: deps, stateName: HandlerStateInterview}}
}

func (h *InterviewHandler) Handle(ctx context.Context, msg *Message) error {
	answer := strings.TrimSpace(msg.Text)
	if answer == "" {
		return nil
	}

	st, err := h.States.Get(ctx, msg.ChatID)
	if err != nil {
		return err
	}

	snap, err := h.call(ctx, msg.ChatID, func(ctx context.Context) (session.Snapshot, error) {
		return h.Controller.SubmitAnswer(ctx, st.Session, answer)
	})
	if err != nil {
		return h.presentError(ctx, msg.ChatID, snap, err)
	}
	return h.presentEvaluation(ctx, msg.ChatID, snap)
}

// Skip records a skipped answer and shows the next question.
func (h *InterviewHandler) Skip(ctx context.Context, chatID int64, st *state.ChatState) error {
	snap, err := h.call(ctx, chatID, func(ctx context.Context) (session.Snapshot, error) {
		return h.Controller.Skip(ctx, st.Session)
	})
	if err != nil {
		return h.presentError(ctx, chatID, snap, err)
	}
	return h.presentQuestion(ctx, chatID, snap)
}

// Retry shows a regenerated version of the current question.
func (h *InterviewHandler) Retry(ctx context.Context, chatID int64, st *state.ChatState) error {
	snap, err := h.call(ctx, chatID, func(ctx context.Context) (session.Snapshot, error) {
		return h.Controller.Retry(ctx, st.Session)
	})
	if err != nil {
		return h.presentError(ctx, chatID, snap, err)
	}
	return h.presentQuestion(ctx, chatID, snap)
}
