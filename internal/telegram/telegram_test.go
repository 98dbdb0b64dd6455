package telegram

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/futig/interview-bot/internal/config"
	"github.com/futig/interview-bot/internal/entity"
	"github.com/futig/interview-bot/internal/pkg/formatter"
	pkgRetry "github.com/futig/interview-bot/internal/pkg/retry"
	"github.com/futig/interview-bot/internal/session"
	"github.com/futig/interview-bot/internal/telegram/bot"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const chatID int64 = 100

type fakeAPI struct {
	mu        sync.Mutex
	texts     []string
	documents []string
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch m := c.(type) {
	case tgbotapi.MessageConfig:
		f.texts = append(f.texts, m.Text)
	case tgbotapi.DocumentConfig:
		if fb, ok := m.File.(tgbotapi.FileBytes); ok {
			f.documents = append(f.documents, fb.Name)
		}
	}
	return tgbotapi.Message{}, nil
}

func (f *fakeAPI) Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeAPI) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return make(chan tgbotapi.Update)
}

func (f *fakeAPI) StopReceivingUpdates() {}

// drain returns the texts sent since the last call.
func (f *fakeAPI) drain() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.texts
	f.texts = nil
	return out
}

type scriptedOrchestrator struct{}

func (scriptedOrchestrator) AskQuestion(_ context.Context, req *entity.AskQuestionRequest) (*entity.QuestionResponse, error) {
	return &entity.QuestionResponse{Question: fmt.Sprintf("Q%d for %s", req.QuestionNumber, req.Role)}, nil
}

func (scriptedOrchestrator) EvaluateAnswer(_ context.Context, req *entity.EvaluateAnswerRequest) (*entity.EvaluationResponse, error) {
	return &entity.EvaluationResponse{Feedback: "Nice.", Question: fmt.Sprintf("Follow-up after %d turns", len(req.ConversationHistory))}, nil
}

func (scriptedOrchestrator) RetryQuestion(_ context.Context, _ *entity.RetryQuestionRequest) (*entity.QuestionResponse, error) {
	return &entity.QuestionResponse{Question: "Reworded question"}, nil
}

func (scriptedOrchestrator) GenerateSummary(_ context.Context, req *entity.GenerateSummaryRequest) (*entity.SummaryResponse, error) {
	return &entity.SummaryResponse{Summary: fmt.Sprintf("Summary of %d turns", len(req.ConversationHistory))}, nil
}

func newTestBot(t *testing.T) (*bot.Bot, *fakeAPI) {
	t.Helper()
	api := &fakeAPI{}
	cfg := &config.TelegramConfig{
		RateLimitPerMinute: 60,
		RateLimitBurst:     20,
		ShutdownTimeout:    1,
		SessionTTL:         time.Hour,
		SendRetry:          pkgRetry.RetryConfig{Attempts: 1, Delay: time.Millisecond, MaxDelay: time.Millisecond},
	}
	b := newBot(api, cfg, session.NewController(scriptedOrchestrator{}), formatter.NewFactory(""), zap.NewNop())
	t.Cleanup(func() { b.Stop() })
	return b, api
}

func command(name string) tgbotapi.Update {
	text := "/" + name
	return tgbotapi.Update{Message: &tgbotapi.Message{
		From:     &tgbotapi.User{ID: chatID},
		Chat:     &tgbotapi.Chat{ID: chatID},
		Text:     text,
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(text)}},
	}}
}

func text(s string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		From: &tgbotapi.User{ID: chatID},
		Chat: &tgbotapi.Chat{ID: chatID},
		Text: s,
	}}
}

func button(data string) tgbotapi.Update {
	return tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb",
		From:    &tgbotapi.User{ID: chatID},
		Message: &tgbotapi.Message{MessageID: 1, Chat: &tgbotapi.Chat{ID: chatID}},
		Data:    data,
	}}
}

func expectLast(t *testing.T, texts []string, substr string) {
	t.Helper()
	if len(texts) == 0 {
		t.Fatalf("expected a message containing %q, got none", substr)
	}
	if last := texts[len(texts)-1]; !strings.Contains(last, substr) {
		t.Fatalf("expected last message to contain %q, got %q", substr, last)
	}
}

func setupInterview(t *testing.T, b *bot.Bot, api *fakeAPI) {
	t.Helper()
	ctx := context.Background()

	b.HandleUpdate(ctx, command("start"))
	expectLast(t, api.drain(), "Which role")

	b.HandleUpdate(ctx, text("Backend Engineer"))
	expectLast(t, api.drain(), "interview mode")

	b.HandleUpdate(ctx, button("mode:technical"))
	expectLast(t, api.drain(), "Which domain")

	b.HandleUpdate(ctx, text("-"))
	texts := api.drain()
	if !strings.Contains(texts[0], "domain: general") {
		t.Errorf("expected setup echo, got %q", texts[0])
	}
	expectLast(t, texts, "Question 1 of 3\n\nQ1 for Backend Engineer")
}

func TestFullInterviewFlow(t *testing.T) {
	b, api := newTestBot(t)
	ctx := context.Background()

	setupInterview(t, b, api)

	b.HandleUpdate(ctx, text("first answer"))
	texts := api.drain()
	if len(texts) != 2 || !strings.Contains(texts[0], "Nice.") {
		t.Fatalf("expected feedback and question, got %q", texts)
	}
	expectLast(t, texts, "Question 2 of 3\n\nFollow-up after 2 turns")

	b.HandleUpdate(ctx, text("second answer"))
	expectLast(t, api.drain(), "Question 3 of 3")

	b.HandleUpdate(ctx, text("third answer"))
	expectLast(t, api.drain(), "Summary of 6 turns")

	b.HandleUpdate(ctx, text("anything else"))
	expectLast(t, api.drain(), "The interview is over")

	b.HandleUpdate(ctx, button("report:pdf"))
	if len(api.documents) != 1 || api.documents[0] != "interview-summary.pdf" {
		t.Fatalf("expected pdf report, got %v", api.documents)
	}
}

func TestSkipAndRetryButtons(t *testing.T) {
	b, api := newTestBot(t)
	ctx := context.Background()

	setupInterview(t, b, api)

	b.HandleUpdate(ctx, button("act:retry"))
	expectLast(t, api.drain(), "Question 1 of 3\n\nReworded question")

	b.HandleUpdate(ctx, button("act:skip"))
	expectLast(t, api.drain(), "Question 2 of 3\n\nQ2 for Backend Engineer")
}

func TestButtonsOutsideInterview(t *testing.T) {
	b, api := newTestBot(t)
	ctx := context.Background()

	b.HandleUpdate(ctx, button("act:skip"))
	expectLast(t, api.drain(), "not available")

	b.HandleUpdate(ctx, button("report:markdown"))
	expectLast(t, api.drain(), "not available")

	b.HandleUpdate(ctx, text("hello"))
	expectLast(t, api.drain(), "/start")
}

func TestCancelDropsInterview(t *testing.T) {
	b, api := newTestBot(t)
	ctx := context.Background()

	setupInterview(t, b, api)

	b.HandleUpdate(ctx, command("cancel"))
	expectLast(t, api.drain(), "cancelled")

	b.HandleUpdate(ctx, text("an answer nobody asked for"))
	expectLast(t, api.drain(), "/start")
}
