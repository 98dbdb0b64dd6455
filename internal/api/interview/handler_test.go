package interview

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/futig/interview-bot/internal/entity"
	"github.com/futig/interview-bot/internal/pkg/formatter"
	"github.com/futig/interview-bot/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type fakeUsecase struct {
	err   error
	calls []entity.Action

	lastAsk      *entity.AskQuestionRequest
	lastEvaluate *entity.EvaluateAnswerRequest
	lastRetry    *entity.RetryQuestionRequest
}

func (f *fakeUsecase) AskQuestion(_ context.Context, req *entity.AskQuestionRequest) (*entity.QuestionResponse, error) {
	f.calls = append(f.calls, entity.ActionAskQuestion)
	f.lastAsk = req
	if f.err != nil {
		return nil, f.err
	}
	return &entity.QuestionResponse{Question: fmt.Sprintf("question %d", req.QuestionNumber)}, nil
}

func (f *fakeUsecase) EvaluateAnswer(_ context.Context, req *entity.EvaluateAnswerRequest) (*entity.EvaluationResponse, error) {
	f.calls = append(f.calls, entity.ActionEvaluateAnswer)
	f.lastEvaluate = req
	if f.err != nil {
		return nil, f.err
	}
	return &entity.EvaluationResponse{Feedback: "good", Question: "next"}, nil
}

func (f *fakeUsecase) RetryQuestion(_ context.Context, req *entity.RetryQuestionRequest) (*entity.QuestionResponse, error) {
	f.calls = append(f.calls, entity.ActionRetryQuestion)
	f.lastRetry = req
	if f.err != nil {
		return nil, f.err
	}
	return &entity.QuestionResponse{Question: "reworded"}, nil
}

func (f *fakeUsecase) GenerateSummary(_ context.Context, req *entity.GenerateSummaryRequest) (*entity.SummaryResponse, error) {
	f.calls = append(f.calls, entity.ActionGenerateSummary)
	if f.err != nil {
		return nil, f.err
	}
	return &entity.SummaryResponse{Summary: "summary"}, nil
}

func newTestRouter(uc InterviewUsecase) http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(uc, formatter.NewFactory(""), validator.NewValidator()))
	return r
}

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

func TestInterviewActions(t *testing.T) {
	tests := []struct {
		name string
		body string
		want map[string]string
	}{
		{
			name: "ask question",
			body: `{"action":"ask_question","role":"SRE","mode":"technical","domain":"","question_number":2}`,
			want: map[string]string{"question": "question 2"},
		},
		{
			name: "evaluate answer",
			body: `{"action":"evaluate_answer","role":"SRE","mode":"technical","conversation_history":[{"role":"bot","text":"q"},{"role":"user","text":"a"}]}`,
			want: map[string]string{"feedback": "good", "question": "next"},
		},
		{
			name: "retry question",
			body: `{"action":"retry_question","role":"SRE","mode":"technical"}`,
			want: map[string]string{"question": "reworded"},
		},
		{
			name: "generate summary",
			body: `{"action":"generate_summary","conversation_history":[{"role":"bot","text":"q"},{"role":"user","text":"a"}]}`,
			want: map[string]string{"summary": "summary"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, newTestRouter(&fakeUsecase{}), "/api/interview", tt.body)
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
			}
			got := decodeBody(t, rec)
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("%s: expected %q, got %q", k, v, got[k])
				}
			}
		})
	}
}

func TestInterviewPassesSetup(t *testing.T) {
	uc := &fakeUsecase{}
	post(t, newTestRouter(uc), "/api/interview",
		`{"action":"ask_question","role":"PM","mode":"behavioral","domain":"fintech","question_number":1}`)

	want := entity.InterviewSetup{Role: "PM", Mode: "behavioral", Domain: "fintech"}
	if uc.lastAsk == nil || uc.lastAsk.InterviewSetup != want || uc.lastAsk.QuestionNumber != 1 {
		t.Fatalf("unexpected ask request %+v", uc.lastAsk)
	}
}

func TestInterviewInvalidAction(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "unknown action", body: `{"action":"dance"}`},
		{name: "missing action", body: `{"role":"SRE"}`},
		{name: "unknown action with negative question number", body: `{"action":"dance","question_number":-1}`},
		{
			name: "unknown action with bad history",
			body: `{"action":"dance","conversation_history":[{"role":"robot","text":"hi"}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUsecase{}
			rec := post(t, newTestRouter(uc), "/api/interview", tt.body)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			if got := decodeBody(t, rec)["error"]; got != "Invalid action" {
				t.Errorf("unexpected error %q", got)
			}
			if len(uc.calls) != 0 {
				t.Errorf("use case must not be called, got %v", uc.calls)
			}
		})
	}
}

func TestInterviewValidatesKnownAction(t *testing.T) {
	uc := &fakeUsecase{}
	rec := post(t, newTestRouter(uc), "/api/interview", `{"action":"ask_question","question_number":-1}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if got := decodeBody(t, rec)["error"]; got == "Invalid action" || got == "" {
		t.Errorf("expected a validation message, got %q", got)
	}
	if len(uc.calls) != 0 {
		t.Errorf("use case must not be called, got %v", uc.calls)
	}
}

func TestInterviewMalformedBody(t *testing.T) {
	rec := post(t, newTestRouter(&fakeUsecase{}), "/api/interview", `{"action":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestInterviewGenerationFailure(t *testing.T) {
	tests := []struct {
		action  string
		message string
	}{
		{"ask_question", "Could not generate a question."},
		{"evaluate_answer", "Could not evaluate the answer."},
		{"retry_question", "Could not retry the question."},
		{"generate_summary", "Could not generate the summary."},
	}

	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			uc := &fakeUsecase{err: fmt.Errorf("%w: upstream 503", entity.ErrGenerationFailed)}
			rec := post(t, newTestRouter(uc), "/api/interview", fmt.Sprintf(`{"action":%q}`, tt.action))

			if rec.Code != http.StatusInternalServerError {
				t.Fatalf("expected 500, got %d", rec.Code)
			}
			body := decodeBody(t, rec)
			if body["error"] != tt.message {
				t.Errorf("expected %q, got %q", tt.message, body["error"])
			}
			if len(body) != 1 {
				t.Errorf("failure must not carry a partial result: %v", body)
			}
		})
	}
}

func TestInterviewInvalidHistory(t *testing.T) {
	uc := &fakeUsecase{err: entity.ErrInvalidHistory}
	rec := post(t, newTestRouter(uc), "/api/interview", `{"action":"evaluate_answer","conversation_history":[]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestReport(t *testing.T) {
	h := newTestRouter(&fakeUsecase{})

	rec := post(t, h, "/api/interview/report?format=markdown",
		`{"role":"SRE","mode":"technical","summary":"Solid.","conversation_history":[{"role":"bot","text":"q"}]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "interview-summary.md") {
		t.Errorf("unexpected Content-Disposition %q", cd)
	}
	if !strings.HasPrefix(rec.Body.String(), "# Interview Summary") {
		t.Errorf("unexpected body %q", rec.Body.String())
	}

	rec = post(t, h, "/api/interview/report?format=pdf", `{"summary":"Solid."}`)
	if rec.Code != http.StatusOK || !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Errorf("expected pdf, got %d", rec.Code)
	}
}

func TestReportRejectsBadInput(t *testing.T) {
	h := newTestRouter(&fakeUsecase{})

	if rec := post(t, h, "/api/interview/report?format=html", `{"summary":"x"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("unknown format: expected 400, got %d", rec.Code)
	}
	if rec := post(t, h, "/api/interview/report", `{"summary":""}`); rec.Code != http.StatusBadRequest {
		t.Errorf("empty summary: expected 400, got %d", rec.Code)
	}
}
