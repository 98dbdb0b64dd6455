package handlers

import (
	"context"
	"fmt"

	"github.com/futig/interview-bot/internal/entity"
	"github.com/futig/interview-bot/internal/pkg/formatter"
	"github.com/futig/interview-bot/internal/telegram/render"
	"github.com/futig/interview-bot/internal/telegram/state"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const reportFileBaseName = "interview-summary"

// SummaryHandler answers messages sent after the interview ended
type SummaryHandler struct {
	BaseHandler
}

func NewSummaryHandler(deps *Deps) *SummaryHandler {
	return &SummaryHandler{BaseHandler{Deps: deps, stateName: HandlerStateSummary}}
}

func (h *SummaryHandler) Handle(ctx context.Context, msg *Message) error {
	return h.Sender.Send(ctx, msg.ChatID, render.MsgInterviewOver, h.Keyboard.SummaryKeyboard())
}

// SendReport renders the finished interview in the given format and sends
// it as a document.
func (h *SummaryHandler) SendReport(ctx context.Context, chatID int64, st *state.ChatState, format entity.ResultFormat) error {
	snap := st.Session.Snapshot()
	if snap.View != entity.ViewSummary {
		return h.Sender.Send(ctx, chatID, render.ErrWrongStep, nil)
	}

	fm, err := h.Formatters.Create(format)
	if err != nil {
		ctxzap.Warn(ctx, "unsupported report format", zap.String("format", string(format)))
		return h.Sender.Send(ctx, chatID, render.ErrReport, nil)
	}

	data, err := fm.Format(formatter.ComposeReport(&entity.ReportRequest{
		Role:                snap.Setup.Role,
		Mode:                snap.Setup.Mode,
		Domain:              snap.Setup.Domain,
		Summary:             snap.Summary,
		ConversationHistory: snap.History,
	}))
	if err != nil {
		ctxzap.Error(ctx, "failed to build report", zap.Error(err))
		return h.Sender.Send(ctx, chatID, render.ErrReport, nil)
	}

	ctxzap.Info(ctx, "sending report",
		zap.String("session_id", snap.ID),
		zap.String("format", string(format)),
		zap.Int("bytes", len(data)),
	)

	if err := h.Sender.SendDocument(ctx, chatID, reportFileBaseName+fm.FileExtension(), data); err != nil {
		return fmt.Errorf("send report: %w", err)
	}
	return nil
}
