package interview

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/futig/interview-bot/internal/config"
	"github.com/futig/interview-bot/internal/entity"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(config.InterviewAPIConfig{
		HTTPClientConfig: config.HTTPClientConfig{Url: srv.URL},
	}, zap.NewNop())
}

func decodeEnvelope(t *testing.T, r *http.Request) entity.InterviewRequest {
	t.Helper()
	var req entity.InterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		t.Fatalf("decode request: %v", err)
	}
	return req
}

func TestClientSendsEnvelopes(t *testing.T) {
	var got []entity.InterviewRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/interview" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("request id header missing")
		}
		req := decodeEnvelope(t, r)
		got = append(got, req)

		w.Header().Set("Content-Type", "application/json")
		switch req.Action {
		case entity.ActionEvaluateAnswer:
			json.NewEncoder(w).Encode(entity.EvaluationResponse{Feedback: "ok", Question: "next"})
		case entity.ActionGenerateSummary:
			json.NewEncoder(w).Encode(entity.SummaryResponse{Summary: "done"})
		default:
			json.NewEncoder(w).Encode(entity.QuestionResponse{Question: "q"})
		}
	})

	ctx := context.Background()
	setup := entity.InterviewSetup{Role: "SRE", Mode: "technical"}
	history := []entity.Turn{entity.BotTurn("q"), entity.UserTurn("a")}

	if resp, err := client.AskQuestion(ctx, &entity.AskQuestionRequest{InterviewSetup: setup, QuestionNumber: 2}); err != nil || resp.Question != "q" {
		t.Fatalf("ask: %v %+v", err, resp)
	}
	if resp, err := client.EvaluateAnswer(ctx, &entity.EvaluateAnswerRequest{InterviewSetup: setup, ConversationHistory: history}); err != nil || resp.Question != "next" || resp.Feedback != "ok" {
		t.Fatalf("evaluate: %v %+v", err, resp)
	}
	if resp, err := client.RetryQuestion(ctx, &entity.RetryQuestionRequest{InterviewSetup: setup, PreviousQuestion: "q"}); err != nil || resp.Question != "q" {
		t.Fatalf("retry: %v %+v", err, resp)
	}
	if resp, err := client.GenerateSummary(ctx, &entity.GenerateSummaryRequest{ConversationHistory: history}); err != nil || resp.Summary != "done" {
		t.Fatalf("summary: %v %+v", err, resp)
	}

	if len(got) != 4 {
		t.Fatalf("expected 4 requests, got %d", len(got))
	}
	if got[0].Action != entity.ActionAskQuestion || got[0].QuestionNumber != 2 || got[0].Role != "SRE" {
		t.Errorf("unexpected ask envelope %+v", got[0])
	}
	if got[1].Action != entity.ActionEvaluateAnswer || len(got[1].ConversationHistory) != 2 {
		t.Errorf("unexpected evaluate envelope %+v", got[1])
	}
	if got[2].Action != entity.ActionRetryQuestion || got[2].PreviousQuestion != "q" {
		t.Errorf("unexpected retry envelope %+v", got[2])
	}
	if got[3].Action != entity.ActionGenerateSummary || got[3].Role != "" {
		t.Errorf("unexpected summary envelope %+v", got[3])
	}
}

func TestClientMapsErrorStatuses(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "generation failure", status: http.StatusInternalServerError, body: `{"error":"Could not generate a question."}`, wantErr: entity.ErrGenerationFailed},
		{name: "invalid action", status: http.StatusBadRequest, body: `{"error":"Invalid action"}`, wantErr: entity.ErrInvalidAction},
		{name: "bad request", status: http.StatusBadRequest, body: `{"error":"invalid request body"}`, wantErr: entity.ErrInvalidParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			resp, err := client.AskQuestion(context.Background(), &entity.AskQuestionRequest{QuestionNumber: 1})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if resp != nil {
				t.Errorf("expected no response, got %+v", resp)
			}
		})
	}
}

func TestClientSendsBearerToken(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(entity.QuestionResponse{Question: "q"})
	}))
	t.Cleanup(srv.Close)

	client := NewClient(config.InterviewAPIConfig{
		HTTPClientConfig: config.HTTPClientConfig{Url: srv.URL, Token: "secret"},
	}, zap.NewNop())

	if _, err := client.AskQuestion(context.Background(), &entity.AskQuestionRequest{QuestionNumber: 1}); err != nil {
		t.Fatalf("AskQuestion: %v", err)
	}
	if auth != "Bearer secret" {
		t.Errorf("Authorization = %q, want %q", auth, "Bearer secret")
	}
}
