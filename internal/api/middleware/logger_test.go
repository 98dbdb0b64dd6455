package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerLevels(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   zapcore.Level
	}{
		{name: "ok", status: http.StatusOK, want: zapcore.InfoLevel},
		{name: "bad request", status: http.StatusBadRequest, want: zapcore.WarnLevel},
		{name: "server error", status: http.StatusInternalServerError, want: zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)

			handler := chimw.RequestID(Logger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctxzap.Info(r.Context(), "inside handler")
				w.WriteHeader(tt.status)
			})))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/interview", nil))

			finish := logs.FilterMessage("Finish handle HTTP request").All()
			if len(finish) != 1 {
				t.Fatalf("expected one finish entry, got %d", len(finish))
			}
			if finish[0].Level != tt.want {
				t.Errorf("level = %v, want %v", finish[0].Level, tt.want)
			}
			if finish[0].ContextMap()["status"] != int64(tt.status) {
				t.Errorf("status field = %v, want %d", finish[0].ContextMap()["status"], tt.status)
			}

			inner := logs.FilterMessage("inside handler").All()
			if len(inner) != 1 {
				t.Fatalf("expected one handler entry, got %d", len(inner))
			}
			if id, _ := inner[0].ContextMap()["request_id"].(string); id == "" {
				t.Errorf("handler log does not carry the request id: %v", inner[0].ContextMap())
			}
		})
	}
}
