package handlers

import (
	"context"
	"strings"

	"github.com/futig/interview-bot/internal/entity"
	"github.com/futig/interview-bot/internal/session"
	"github.com/futig/interview-bot/internal/telegram/render"
	"github.com/futig/interview-bot/internal/telegram/state"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// domainGeneral is what users send to skip the domain.
const domainGeneral = "-"

// SetupHandler collects role, mode and domain, then starts the interview
type SetupHandler struct {
	BaseHandler
}

func NewSetupHandler(deps *Deps) *SetupHandler {
	return &SetupHandler{BaseHandler{Deps: deps, stateName: HandlerStateSetup}}
}

func (h *SetupHandler) Handle(ctx context.Context, msg *Message) error {
	st, err := h.States.Get(ctx, msg.ChatID)
	if err != nil {
		return err
	}

	text := strings.TrimSpace(msg.Text)

	switch st.Step() {
	case state.StepRole:
		if text == "" {
			return h.Sender.Send(ctx, msg.ChatID, render.MsgAskRole, nil)
		}
		st.Advance(state.StepMode, func(s *entity.InterviewSetup) { s.Role = text })
		return h.Sender.Send(ctx, msg.ChatID, render.MsgAskMode, h.Keyboard.ModeKeyboard())

	case state.StepMode:
		if text == "" {
			return h.Sender.Send(ctx, msg.ChatID, render.MsgAskMode, h.Keyboard.ModeKeyboard())
		}
		return h.SelectMode(ctx, msg.ChatID, st, text)

	case state.StepDomain:
		if text == domainGeneral {
			text = ""
		}
		setup := st.Advance(state.StepDone, func(s *entity.InterviewSetup) { s.Domain = text })
		return h.start(ctx, msg.ChatID, st, setup)

	default:
		return h.Sender.Send(ctx, msg.ChatID, render.MsgUseStart, h.Keyboard.StartKeyboard())
	}
}

// SelectMode stores the mode chosen by button or text and asks for the domain.
func (h *SetupHandler) SelectMode(ctx context.Context, chatID int64, st *state.ChatState, mode string) error {
	st.Advance(state.StepDomain, func(s *entity.InterviewSetup) { s.Mode = mode })
	return h.Sender.Send(ctx, chatID, render.MsgAskDomain, nil)
}

func (h *SetupHandler) start(ctx context.Context, chatID int64, st *state.ChatState, setup entity.InterviewSetup) error {
	ctxzap.Info(ctx, "starting interview",
		zap.String("role", setup.Role),
		zap.String("mode", setup.Mode),
		zap.String("domain", setup.Domain),
	)

	if err := h.Sender.Send(ctx, chatID, render.RenderSetup(setup), nil); err != nil {
		return err
	}

	snap, err := h.call(ctx, chatID, func(ctx context.Context) (session.Snapshot, error) {
		return h.Controller.Start(ctx, st.Session, setup)
	})
	if err != nil {
		return h.presentError(ctx, chatID, snap, err)
	}
	return h.presentQuestion(ctx, chatID, snap)
}
