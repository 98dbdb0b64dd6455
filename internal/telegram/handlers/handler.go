package handlers

import (
	"context"

	"github.com/futig/interview-bot/internal/telegram/keyboard"
	"github.com/futig/interview-bot/internal/telegram/state"
	"go.uber.org/zap"
)

// Handler state constants
const (
	HandlerStateCallback  = "CALLBACK"
	HandlerStateSetup     = "SETUP"
	HandlerStateInterview = "INTERVIEW"
	HandlerStateSummary   = "SUMMARY"
)

// Message represents a normalized Telegram message
type Message struct {
	ChatID       int64
	UserID       int64
	MessageID    int
	Text         string
	CallbackData string
	CallbackID   string
}

// Handler defines the interface for state-specific handlers
type Handler interface {
	Handle(ctx context.Context, msg *Message) error
	GetState() string
}

// Deps are shared by every handler
type Deps struct {
	API        API
	States     *state.Manager
	Controller InterviewController
	Keyboard   *keyboard.Builder
	Sender     *MessageSender
	Formatters FormatterFactory
	Logger     *zap.Logger
}

// BaseHandler provides common functionality for all handlers
type BaseHandler struct {
	*Deps
	stateName string
}

func (h *BaseHandler) GetState() string {
	return h.stateName
}

var validStates = map[string]bool{
	HandlerStateCallback:  true,
	HandlerStateSetup:     true,
	HandlerStateInterview: true,
	HandlerStateSummary:   true,
}

// IsValidState checks if a state is valid for handler registration
func IsValidState(state string) bool {
	return validStates[state]
}
