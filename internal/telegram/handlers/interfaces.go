package handlers

import (
	"context"

	"github.com/futig/interview-bot/internal/entity"
	"github.com/futig/interview-bot/internal/pkg/formatter"
	"github.com/futig/interview-bot/internal/session"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// API is the part of the Telegram bot API the handlers use.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// InterviewController drives one chat's interview session
type InterviewController interface {
	Start(ctx context.Context, s *session.Session, setup entity.InterviewSetup) (session.Snapshot, error)
	SubmitAnswer(ctx context.Context, s *session.Session, answer string) (session.Snapshot, error)
	Skip(ctx context.Context, s *session.Session) (session.Snapshot, error)
	Retry(ctx context.Context, s *session.Session) (session.Snapshot, error)
	NewInterview(s *session.Session) session.Snapshot
}

type FormatterFactory interface {
	Create(format entity.ResultFormat) (formatter.Formatter, error)
}
