package handlers

import (
	"context"
	"fmt"

	"github.com/futig/interview-bot/internal/entity"
	"github.com/futig/interview-bot/internal/telegram/keyboard"
	"github.com/futig/interview-bot/internal/telegram/render"
	"github.com/futig/interview-bot/internal/telegram/state"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// CallbackHandler handles all inline button presses
type CallbackHandler struct {
	BaseHandler
	setup     *SetupHandler
	interview *InterviewHandler
	summary   *SummaryHandler
}

func NewCallbackHandler(deps *Deps, setup *SetupHandler, interview *InterviewHandler, summary *SummaryHandler) *CallbackHandler {
	return &CallbackHandler{
		BaseHandler: BaseHandler{Deps: deps, stateName: HandlerStateCallback},
		setup:       setup,
		interview:   interview,
		summary:     summary,
	}
}

func (h *CallbackHandler) Handle(ctx context.Context, msg *Message) error {
	data, err := keyboard.ParseCallback(msg.CallbackData)
	if err != nil {
		h.Sender.AnswerCallback(msg.CallbackID, "❌ Unknown button")
		return nil
	}

	ctx = ctxzap.ToContext(ctx, ctxzap.Extract(ctx).With(
		zap.String("callback_action", data.Action),
		zap.String("callback_value", data.Value),
	))

	h.Sender.AnswerCallback(msg.CallbackID, "")

	st, err := h.States.GetOrCreate(ctx, msg.ChatID)
	if err != nil {
		return err
	}

	switch data.Action {
	case keyboard.ActionAct:
		return h.handleAct(ctx, msg.ChatID, st, data.Value)

	case keyboard.ActionMode:
		if st.Step() != state.StepMode {
			return h.Sender.Send(ctx, msg.ChatID, render.ErrWrongStep, nil)
		}
		return h.setup.SelectMode(ctx, msg.ChatID, st, data.Value)

	case keyboard.ActionReport:
		return h.summary.SendReport(ctx, msg.ChatID, st, entity.ResultFormat(data.Value))

	default:
		return fmt.Errorf("unknown callback action %q", data.Action)
	}
}

func (h *CallbackHandler) handleAct(ctx context.Context, chatID int64, st *state.ChatState, act string) error {
	switch act {
	case keyboard.ActStart, keyboard.ActNew:
		return h.StartSetup(ctx, chatID, st)
	case keyboard.ActSkip:
		return h.interview.Skip(ctx, chatID, st)
	case keyboard.ActRetry:
		return h.interview.Retry(ctx, chatID, st)
	default:
		return fmt.Errorf("unknown act %q", act)
	}
}
