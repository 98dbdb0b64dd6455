package handlers

import (
	"context"

	"github.com/futig/interview-bot/internal/entity"
	"github.com/futig/interview-bot/internal/session"
	"github.com/futig/interview-bot/internal/telegram/render"
	"github.com/futig/interview-bot/internal/telegram/state"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// StartSetup abandons whatever the chat was doing and asks for the role.
func (d *Deps) StartSetup(ctx context.Context, chatID int64, st *state.ChatState) error {
	snap := d.Controller.NewInterview(st.Session)
	st.ResetSetup()

	ctxzap.Info(ctx, "interview setup started", zap.String("session_id", snap.ID))

	if err := d.Sender.Send(ctx, chatID, render.MsgWelcome, nil); err != nil {
		return err
	}
	return d.Sender.Send(ctx, chatID, render.MsgAskRole, nil)
}

// call runs one controller operation with the typing indicator shown.
func (d *Deps) call(ctx context.Context, chatID int64, op func(context.Context) (session.Snapshot, error)) (session.Snapshot, error) {
	typing := NewTypingNotifier(d.API, chatID, d.Logger)
	typing.Start(ctx)
	defer typing.Stop()

	return op(ctx)
}

// presentQuestion shows the current question with the interview buttons.
func (d *Deps) presentQuestion(ctx context.Context, chatID int64, snap session.Snapshot) error {
	return d.Sender.Send(ctx, chatID, render.RenderQuestion(snap.QuestionNumber, snap.CurrentQuestion), d.Keyboard.InterviewKeyboard())
}

// presentEvaluation shows feedback and the next question, or the summary
// once the interview is over.
func (d *Deps) presentEvaluation(ctx context.Context, chatID int64, snap session.Snapshot) error {
	if snap.View == entity.ViewSummary {
		return d.Sender.Send(ctx, chatID, render.RenderSummary(snap.Summary), d.Keyboard.SummaryKeyboard())
	}

	if err := d.Sender.Send(ctx, chatID, render.RenderFeedback(snap.Feedback), nil); err != nil {
		return err
	}
	return d.presentQuestion(ctx, chatID, snap)
}

// presentError reports a failed or rejected operation. Nothing is rolled
// back, so the buttons of the current view stay usable.
func (d *Deps) presentError(ctx context.Context, chatID int64, snap session.Snapshot, err error) error {
	ctxzap.Warn(ctx, "interview operation failed",
		zap.String("session_id", snap.ID),
		zap.String("view", string(snap.View)),
		zap.Error(err),
	)

	var markup any
	switch snap.View {
	case entity.ViewInterview:
		markup = d.Keyboard.InterviewKeyboard()
	case entity.ViewSummary:
		markup = d.Keyboard.SummaryKeyboard()
	}
	return d.Sender.Send(ctx, chatID, render.ClassifyError(err), markup)
}
